package yamlsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrendBraeckmans/koheesio/pkg/adapters/yamlsource"
	"github.com/BrendBraeckmans/koheesio/pkg/ports"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLSource_Contract(t *testing.T) {
	path := writeFile(t, "base.yaml", "db:\n  host: localhost\n  port: 5432\nname: etl\n")

	src := yamlsource.New(path)
	ports.RunContextSourceContract(t, src, map[string]any{
		"db":   map[string]any{"host": "localhost", "port": 5432},
		"name": "etl",
	})
}

func TestYAMLSource_JSON(t *testing.T) {
	path := writeFile(t, "base.json", `{"db": {"host": "localhost"}, "retries": 3}`)

	src := yamlsource.New(path)
	got, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "localhost"}, got["db"])
	assert.Equal(t, float64(3), got["retries"], "JSON numbers decode as float64")
}

func TestYAMLSource_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := yamlsource.New(missing).Load(context.Background())
	require.Error(t, err)

	got, err := yamlsource.New(missing, yamlsource.WithOptional()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestYAMLSource_MalformedFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "db: [unclosed\n")

	_, err := yamlsource.New(path).Load(context.Background())
	require.Error(t, err)
}
