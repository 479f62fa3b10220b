package pipeline

import (
	"context"
	"slices"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/schema"
)

// Step is the atomic unit of work. A Step declares its configuration needs
// and Output schema up front, validates them against a Context without
// running domain logic, and produces a schema-conformant Output on success.
//
// Task satisfies Step as well, so compositions nest to arbitrary depth.
type Step interface {
	// Name identifies the step in logs and error chains.
	Name() string

	// Requirements returns the declared config paths and Output schema.
	// It is evaluated at construction/validation time, not per call.
	Requirements() Requirements

	// Validate checks that every required config path resolves in cfg with
	// an acceptable type. It must not run domain logic and must treat cfg
	// as read-only.
	Validate(cfg *config.Context) error

	// Execute runs the domain logic with the given working artifact as
	// input. Side effects are permitted; their results (handles, counts)
	// belong in the returned Output, not in implicit external state.
	Execute(ctx context.Context, cfg *config.Context, input any) (*Output, error)
}

// ConfigRequirement names one Context path a step needs. A nil Type means
// presence is enough; otherwise the resolved value must also conform.
type ConfigRequirement struct {
	Path string
	Type schema.Type
}

// Require declares a presence-only config requirement.
func Require(path string) ConfigRequirement {
	return ConfigRequirement{Path: path}
}

// RequireTyped declares a config requirement with a type check.
func RequireTyped(path string, t schema.Type) ConfigRequirement {
	return ConfigRequirement{Path: path, Type: t}
}

// Requirements is a step's declared contract: which config paths it reads
// and which Output fields it promises to produce.
type Requirements struct {
	Config  []ConfigRequirement
	Outputs schema.Schema
}

// Idempotent marks steps documented as safe to re-run: executing twice
// with the same Context and input yields identical Output. The framework
// surfaces this declaration but does not enforce it.
type Idempotent interface {
	Idempotent() bool
}

// IsIdempotent reports whether s documents itself as idempotent.
func IsIdempotent(s Step) bool {
	if i, ok := s.(Idempotent); ok {
		return i.Idempotent()
	}
	return false
}

// Base implements the declarative half of Step (Name, Requirements,
// Validate) so concrete steps only provide Execute. Embed it by value:
//
//	type FileReader struct {
//		pipeline.Base
//		Path string
//	}
type Base struct {
	name string
	reqs Requirements
}

// NewBase constructs the declarative part of a step.
func NewBase(name string, reqs Requirements) Base {
	return Base{name: name, reqs: reqs}
}

func (b Base) Name() string { return b.name }

func (b Base) Requirements() Requirements {
	return Requirements{
		Config:  slices.Clone(b.reqs.Config),
		Outputs: b.reqs.Outputs,
	}
}

// Validate checks every declared config path against cfg.
func (b Base) Validate(cfg *config.Context) error {
	return checkConfig(b.name, b.reqs.Config, cfg)
}

func checkConfig(step string, reqs []ConfigRequirement, cfg *config.Context) error {
	if len(reqs) == 0 {
		return nil
	}
	if cfg == nil {
		cfg = config.Empty()
	}
	for _, req := range reqs {
		value, err := cfg.Resolve(req.Path)
		if err != nil {
			return &ConfigResolutionError{Step: step, Path: req.Path, Err: err}
		}
		if req.Type != nil {
			if err := req.Type.Validate(value); err != nil {
				return &ConfigResolutionError{Step: step, Path: req.Path, Err: err}
			}
		}
	}
	return nil
}

// RequireConfig decorates a step with additional config requirements
// checked before the step's own Validate. It lets callers tighten a
// reusable step for a particular pipeline without subclassing it.
func RequireConfig(s Step, reqs ...ConfigRequirement) Step {
	if len(reqs) == 0 {
		return s
	}
	return &requiredConfig{step: s, extra: reqs}
}

type requiredConfig struct {
	step  Step
	extra []ConfigRequirement
}

func (r *requiredConfig) Name() string { return r.step.Name() }

func (r *requiredConfig) Requirements() Requirements {
	base := r.step.Requirements()
	return Requirements{
		Config:  append(slices.Clone(base.Config), r.extra...),
		Outputs: base.Outputs,
	}
}

func (r *requiredConfig) Validate(cfg *config.Context) error {
	if err := checkConfig(r.step.Name(), r.extra, cfg); err != nil {
		return err
	}
	return r.step.Validate(cfg)
}

func (r *requiredConfig) Execute(ctx context.Context, cfg *config.Context, input any) (*Output, error) {
	return r.step.Execute(ctx, cfg, input)
}

func (r *requiredConfig) Idempotent() bool { return IsIdempotent(r.step) }
