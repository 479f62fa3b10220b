package steps

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/schema"
)

// KindTemplate is the registry kind of TemplateTransform.
const KindTemplate = "transform.template"

func init() {
	Register(KindTemplate, func(name string, params map[string]any) (pipeline.Step, error) {
		var p struct {
			Template string `mapstructure:"template"`
		}
		if err := decodeParams(KindTemplate, params, &p); err != nil {
			return nil, err
		}
		return NewTemplateTransform(name, p.Template)
	})
}

// TemplateTransform renders a Go text/template over the working artifact
// and the Context, producing the Output field "result". The template sees
//
//	.Input  — the working artifact
//	.Config — the Context as a namespace tree
//
// It is idempotent by contract: same Context and input, same result.
type TemplateTransform struct {
	pipeline.Base
	tmpl *template.Template
}

// NewTemplateTransform parses the template text at construction so a bad
// template fails before the pipeline runs.
func NewTemplateTransform(name, text string) (*TemplateTransform, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template for %s: %w", name, err)
	}
	return &TemplateTransform{
		Base: pipeline.NewBase(name, pipeline.Requirements{
			Outputs: schema.Schema{"result": schema.String()},
		}),
		tmpl: tmpl,
	}, nil
}

func (s *TemplateTransform) Idempotent() bool { return true }

func (s *TemplateTransform) Execute(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
	data := struct {
		Input  any
		Config map[string]any
	}{Input: input, Config: cfg.Values()}

	var buf strings.Builder
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return pipeline.NewOutput(s.Name()).Set("result", buf.String()), nil
}
