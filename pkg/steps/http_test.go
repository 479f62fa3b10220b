package steps_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/steps"
)

func TestHTTPFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	fetch := steps.NewHTTPFetch("fetch", server.URL,
		steps.WithClient(server.Client()),
		steps.WithHeaders(map[string]string{"Authorization": "token"}),
	)
	assert.False(t, pipeline.IsIdempotent(fetch))

	out, err := pipeline.Run(context.Background(), fetch, config.Empty(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, out.Field("status"))
	assert.Equal(t, `{"ok":true}`, out.Field("body"))
}

func TestHTTPFetch_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	fetch := steps.NewHTTPFetch("fetch", server.URL, steps.WithClient(server.Client()))
	_, err := pipeline.Run(context.Background(), fetch, config.Empty(), nil)

	var execErr *pipeline.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "fetch", execErr.Step)
	assert.Contains(t, err.Error(), "410")
}

func TestHTTPFetch_Cancellation(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	fetch := steps.NewHTTPFetch("fetch", server.URL, steps.WithClient(server.Client()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.Run(ctx, fetch, config.Empty(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetch_EmptyURL(t *testing.T) {
	fetch := steps.NewHTTPFetch("fetch", "")
	err := fetch.Validate(config.Empty())

	var verr *pipeline.ValidationError
	assert.ErrorAs(t, err, &verr)
}
