package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunContextSourceContract runs a suite of tests to verify that a
// ContextSource implementation adheres to the interface contract.
// want holds top-level keys (and nested namespaces) the source is
// expected to produce.
func RunContextSourceContract(t *testing.T, src ContextSource, want map[string]any) {
	ctx := context.Background()

	t.Run("Name", func(t *testing.T) {
		assert.NotEmpty(t, src.Name(), "Name should identify the source")
	})

	t.Run("Load", func(t *testing.T) {
		got, err := src.Load(ctx)
		require.NoError(t, err, "Load should not return error")
		for key, value := range want {
			assert.Equal(t, value, got[key], "key %q", key)
		}
	})

	t.Run("Load is deterministic", func(t *testing.T) {
		first, err := src.Load(ctx)
		require.NoError(t, err)
		second, err := src.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second, "two loads of the same source should agree")
	})

	t.Run("Load returns a fresh map", func(t *testing.T) {
		first, err := src.Load(ctx)
		require.NoError(t, err)
		first["__mutated__"] = true

		second, err := src.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, second, "__mutated__", "Load must not retain returned maps")
	})
}
