package koheesio

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BrendBraeckmans/koheesio/pkg/adapters/envsource"
	"github.com/BrendBraeckmans/koheesio/pkg/adapters/redissource"
	"github.com/BrendBraeckmans/koheesio/pkg/adapters/yamlsource"
	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/ports"
	"github.com/BrendBraeckmans/koheesio/pkg/schema"
	"github.com/BrendBraeckmans/koheesio/pkg/steps"
)

// Definition is the declarative form of a pipeline: named, configured from
// ordered context sources, and composed of registry-built steps.
//
//	name: nightly-sync
//	context:
//	  - kind: yaml
//	    path: config/base.yaml
//	  - kind: env
//	    prefix: SYNC
//	chain_field: result
//	steps:
//	  - name: read
//	    kind: file.read
//	    params: {path: /data/in.txt}
//	    requires:
//	      - path: db.host
//	        type: string
type Definition struct {
	Name       string       `yaml:"name"`
	Context    []ContextRef `yaml:"context"`
	ChainField string       `yaml:"chain_field"`
	Trace      bool         `yaml:"trace"`
	Steps      []StepDef    `yaml:"steps"`
}

// ContextRef names one context source layer. Kind selects the adapter;
// later layers override earlier ones.
type ContextRef struct {
	Kind     string `yaml:"kind"` // yaml | env | redis
	Optional bool   `yaml:"optional"`

	// yaml
	Path string `yaml:"path"`

	// env
	Prefix string `yaml:"prefix"`

	// redis
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// StepDef declares one child step of the pipeline.
type StepDef struct {
	Name     string           `yaml:"name"`
	Kind     string           `yaml:"kind"`
	Params   map[string]any   `yaml:"params"`
	Requires []RequirementDef `yaml:"requires"`
}

// RequirementDef declares one config path the step needs. Type is optional
// and uses the schema type grammar ("string", "int", "[string]", ...).
type RequirementDef struct {
	Path string `yaml:"path"`
	Type string `yaml:"type"`
}

// LoadDefinition reads and parses a pipeline definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition parses a YAML pipeline definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the structural rules of a definition before any source
// is loaded or step is built.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("definition: name is required")
	}
	if len(d.Steps) == 0 {
		return fmt.Errorf("definition %s: at least one step is required", d.Name)
	}
	seen := map[string]bool{}
	for i, step := range d.Steps {
		if step.Name == "" {
			return fmt.Errorf("definition %s: step %d: name is required", d.Name, i+1)
		}
		if step.Kind == "" {
			return fmt.Errorf("definition %s: step %q: kind is required", d.Name, step.Name)
		}
		if seen[step.Name] {
			return fmt.Errorf("definition %s: duplicate step name %q", d.Name, step.Name)
		}
		seen[step.Name] = true
	}
	for i, ref := range d.Context {
		switch ref.Kind {
		case "yaml":
			if ref.Path == "" {
				return fmt.Errorf("definition %s: context %d: yaml source needs a path", d.Name, i+1)
			}
		case "env":
			if ref.Prefix == "" {
				return fmt.Errorf("definition %s: context %d: env source needs a prefix", d.Name, i+1)
			}
		case "redis":
			if ref.Address == "" || ref.Key == "" {
				return fmt.Errorf("definition %s: context %d: redis source needs an address and a key", d.Name, i+1)
			}
		default:
			return fmt.Errorf("definition %s: context %d: unknown source kind %q", d.Name, i+1, ref.Kind)
		}
	}
	return nil
}

// BuildContext loads and merges the definition's context sources in order.
// A definition without sources gets the process default Context.
func (d *Definition) BuildContext(ctx context.Context) (*config.Context, error) {
	if len(d.Context) == 0 {
		return DefaultContext(), nil
	}
	sources := make([]ports.ContextSource, 0, len(d.Context))
	for _, ref := range d.Context {
		src, err := buildSource(ref)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return config.New(ctx, sources...)
}

func buildSource(ref ContextRef) (ports.ContextSource, error) {
	switch ref.Kind {
	case "yaml":
		var opts []yamlsource.Option
		if ref.Optional {
			opts = append(opts, yamlsource.WithOptional())
		}
		return yamlsource.New(ref.Path, opts...), nil
	case "env":
		return envsource.New(ref.Prefix), nil
	case "redis":
		var opts []redissource.Option
		if ref.Optional {
			opts = append(opts, redissource.WithOptional())
		}
		return redissource.New(ref.Address, ref.Password, ref.DB, ref.Key, opts...), nil
	default:
		return nil, fmt.Errorf("unknown context source kind %q", ref.Kind)
	}
}

// BuildTask materializes the definition into a Task: every step comes from
// the registry, tightened with its declared config requirements. Extra
// TaskOptions (logger, hooks) are applied after the definition's own.
func (d *Definition) BuildTask(opts ...pipeline.TaskOption) (*pipeline.Task, error) {
	children := make([]pipeline.Step, 0, len(d.Steps))
	for _, sd := range d.Steps {
		step, err := steps.New(sd.Kind, sd.Name, sd.Params)
		if err != nil {
			return nil, fmt.Errorf("definition %s: step %q: %w", d.Name, sd.Name, err)
		}
		reqs, err := parseRequirements(sd.Requires)
		if err != nil {
			return nil, fmt.Errorf("definition %s: step %q: %w", d.Name, sd.Name, err)
		}
		children = append(children, pipeline.RequireConfig(step, reqs...))
	}

	taskOpts := []pipeline.TaskOption{}
	if d.ChainField != "" {
		taskOpts = append(taskOpts, pipeline.WithChainField(d.ChainField))
	}
	if d.Trace {
		taskOpts = append(taskOpts, pipeline.WithTrace())
	}
	taskOpts = append(taskOpts, opts...)

	return pipeline.NewTask(d.Name, children, taskOpts...), nil
}

func parseRequirements(defs []RequirementDef) ([]pipeline.ConfigRequirement, error) {
	reqs := make([]pipeline.ConfigRequirement, 0, len(defs))
	for _, rd := range defs {
		if rd.Path == "" {
			return nil, errors.New("requirement needs a path")
		}
		if rd.Type == "" {
			reqs = append(reqs, pipeline.Require(rd.Path))
			continue
		}
		t, err := schema.ParseType(rd.Type)
		if err != nil {
			return nil, fmt.Errorf("requirement %s: %w", rd.Path, err)
		}
		reqs = append(reqs, pipeline.RequireTyped(rd.Path, t))
	}
	return reqs, nil
}
