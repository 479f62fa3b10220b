package pipeline

import (
	"maps"

	"github.com/BrendBraeckmans/koheesio/pkg/schema"
)

// Output is the named-field result record of one step invocation. It is
// owned by the invocation that produced it until handed to the caller.
type Output struct {
	step   string
	fields map[string]any
}

// NewOutput creates an empty Output attributed to the named step.
func NewOutput(step string) *Output {
	return &Output{step: step, fields: make(map[string]any)}
}

// Step returns the name of the step that produced this Output.
func (o *Output) Step() string { return o.step }

// Set stores a field value and returns the Output for chaining.
func (o *Output) Set(name string, value any) *Output {
	o.fields[name] = value
	return o
}

// Get returns a field value and whether it is present.
func (o *Output) Get(name string) (any, bool) {
	value, ok := o.fields[name]
	return value, ok
}

// Field returns a field value, or nil when absent.
func (o *Output) Field(name string) any {
	return o.fields[name]
}

// Fields returns a shallow copy of all fields.
func (o *Output) Fields() map[string]any {
	return maps.Clone(o.fields)
}

// Validate checks the Output against a declared schema. Every declared
// field must be present and conformant; undeclared fields are allowed.
func (o *Output) Validate(s schema.Schema) error {
	return schema.Validate(s, o.fields)
}
