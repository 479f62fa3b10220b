package redissource_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrendBraeckmans/koheesio/pkg/adapters/redissource"
	"github.com/BrendBraeckmans/koheesio/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSource_Contract(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set("koheesio:config", `{"db": {"host": "localhost"}, "name": "etl"}`))

	src := redissource.NewFromClient(client, "koheesio:config")
	ports.RunContextSourceContract(t, src, map[string]any{
		"db":   map[string]any{"host": "localhost"},
		"name": "etl",
	})
}

func TestRedisSource_MissingKey(t *testing.T) {
	_, client := newClient(t)

	_, err := redissource.NewFromClient(client, "absent").Load(context.Background())
	assert.ErrorIs(t, err, redissource.ErrDocumentNotFound)

	got, err := redissource.NewFromClient(client, "absent", redissource.WithOptional()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisSource_MalformedDocument(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set("koheesio:config", "not json"))

	_, err := redissource.NewFromClient(client, "koheesio:config").Load(context.Background())
	require.Error(t, err)
}
