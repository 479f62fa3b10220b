package steps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/schema"
)

// KindHTTPFetch is the registry kind of HTTPFetch.
const KindHTTPFetch = "http.fetch"

func init() {
	Register(KindHTTPFetch, func(name string, params map[string]any) (pipeline.Step, error) {
		var p struct {
			URL     string            `mapstructure:"url"`
			Headers map[string]string `mapstructure:"headers"`
		}
		if err := decodeParams(KindHTTPFetch, params, &p); err != nil {
			return nil, err
		}
		opts := []HTTPFetchOption{}
		if len(p.Headers) > 0 {
			opts = append(opts, WithHeaders(p.Headers))
		}
		return NewHTTPFetch(name, p.URL, opts...), nil
	})
}

// HTTPFetchOption configures an HTTPFetch step.
type HTTPFetchOption func(*HTTPFetch)

// WithClient swaps the HTTP client, mainly for tests against httptest
// servers.
func WithClient(client *http.Client) HTTPFetchOption {
	return func(s *HTTPFetch) { s.client = client }
}

// WithHeaders adds request headers.
func WithHeaders(headers map[string]string) HTTPFetchOption {
	return func(s *HTTPFetch) { s.headers = headers }
}

// HTTPFetch issues a GET request and exposes the response as the Output
// fields "status" and "body". A non-2xx status is an execution failure.
// Remote state can change between runs, so the step is not idempotent.
type HTTPFetch struct {
	pipeline.Base
	URL     string
	client  *http.Client
	headers map[string]string
}

// NewHTTPFetch creates a fetch step for the given URL.
func NewHTTPFetch(name, url string, opts ...HTTPFetchOption) *HTTPFetch {
	s := &HTTPFetch{
		Base: pipeline.NewBase(name, pipeline.Requirements{
			Outputs: schema.Schema{
				"status": schema.Int(),
				"body":   schema.String(),
			},
		}),
		URL:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPFetch) Validate(cfg *config.Context) error {
	if err := s.Base.Validate(cfg); err != nil {
		return err
	}
	if s.URL == "" {
		return &pipeline.ValidationError{Step: s.Name(), Err: errors.New("url is required")}
	}
	return nil
}

func (s *HTTPFetch) Execute(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", s.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.URL, resp.StatusCode)
	}

	return pipeline.NewOutput(s.Name()).
		Set("status", resp.StatusCode).
		Set("body", string(body)), nil
}
