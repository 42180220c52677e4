package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"planetary-server/internal/store"
	"planetary-server/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBackend(t *testing.T, path string) *Backend {
	t.Helper()

	backend, err := Open(context.Background(), path)
	require.NoError(t, err)
	return backend
}

func TestBackend(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Backend {
		backend := openTestBackend(t, filepath.Join(t.TempDir(), "planetary.db"))
		t.Cleanup(func() { _ = backend.Close() })
		return backend
	})
}

func TestBackend_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planetary.db")
	ctx := context.Background()

	backend := openTestBackend(t, path)
	require.NoError(t, backend.Collection("planetary_bodies").Insert(ctx, "earth", json.RawMessage(`{"id":"earth"}`)))
	require.NoError(t, backend.Close())

	reopened := openTestBackend(t, path)
	defer reopened.Close()

	got, err := reopened.Collection("planetary_bodies").Get(ctx, "earth")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"earth"}`, string(got))
}
