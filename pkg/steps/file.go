package steps

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/schema"
)

// Step kinds provided by this file.
const (
	KindFileRead  = "file.read"
	KindFileWrite = "file.write"
)

func init() {
	Register(KindFileRead, func(name string, params map[string]any) (pipeline.Step, error) {
		var p struct {
			Path string `mapstructure:"path"`
		}
		if err := decodeParams(KindFileRead, params, &p); err != nil {
			return nil, err
		}
		return NewFileReader(name, p.Path), nil
	})
	Register(KindFileWrite, func(name string, params map[string]any) (pipeline.Step, error) {
		var p struct {
			Path string `mapstructure:"path"`
		}
		if err := decodeParams(KindFileWrite, params, &p); err != nil {
			return nil, err
		}
		return NewFileWriter(name, p.Path), nil
	})
}

// FileReader reads a file into the Output fields "content" and "bytes".
// It is idempotent by contract as long as the source file is unchanged.
type FileReader struct {
	pipeline.Base
	Path string
}

// NewFileReader creates a reader for the given path.
func NewFileReader(name, path string) *FileReader {
	return &FileReader{
		Base: pipeline.NewBase(name, pipeline.Requirements{
			Outputs: schema.Schema{
				"content": schema.String(),
				"bytes":   schema.Int(),
			},
		}),
		Path: path,
	}
}

func (s *FileReader) Idempotent() bool { return true }

func (s *FileReader) Validate(cfg *config.Context) error {
	if err := s.Base.Validate(cfg); err != nil {
		return err
	}
	if s.Path == "" {
		return &pipeline.ValidationError{Step: s.Name(), Err: errors.New("path is required")}
	}
	return nil
}

func (s *FileReader) Execute(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return pipeline.NewOutput(s.Name()).
		Set("content", string(data)).
		Set("bytes", len(data)), nil
}

// FileWriter writes the working artifact to a file and reports "path" and
// "bytes_written". The write happens during Execute and is not rolled
// back if a later step fails.
type FileWriter struct {
	pipeline.Base
	Path string
	Perm os.FileMode
}

// NewFileWriter creates a writer targeting the given path.
func NewFileWriter(name, path string) *FileWriter {
	return &FileWriter{
		Base: pipeline.NewBase(name, pipeline.Requirements{
			Outputs: schema.Schema{
				"path":          schema.String(),
				"bytes_written": schema.Int(),
			},
		}),
		Path: path,
		Perm: 0o644,
	}
}

func (s *FileWriter) Validate(cfg *config.Context) error {
	if err := s.Base.Validate(cfg); err != nil {
		return err
	}
	if s.Path == "" {
		return &pipeline.ValidationError{Step: s.Name(), Err: errors.New("path is required")}
	}
	return nil
}

func (s *FileWriter) Execute(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
	data, err := artifactBytes(input)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.Path, data, s.Perm); err != nil {
		return nil, fmt.Errorf("write %s: %w", s.Path, err)
	}
	return pipeline.NewOutput(s.Name()).
		Set("path", s.Path).
		Set("bytes_written", len(data)), nil
}

// artifactBytes coerces a working artifact into writable bytes. An Output
// artifact contributes its "content" or "result" field.
func artifactBytes(input any) ([]byte, error) {
	switch v := input.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case *pipeline.Output:
		if content, ok := v.Get("content"); ok {
			return artifactBytes(content)
		}
		if result, ok := v.Get("result"); ok {
			return artifactBytes(result)
		}
		return nil, fmt.Errorf("output of %q carries no writable field", v.Step())
	default:
		return nil, fmt.Errorf("cannot write artifact of type %T", input)
	}
}
