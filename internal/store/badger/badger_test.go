package badger

import (
	"context"
	"encoding/json"
	"testing"

	"planetary-server/internal/store"
	"planetary-server/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_InMemory(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Backend {
		backend, err := Open("", true, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = backend.Close() })
		return backend
	})
}

func TestBackend_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := Open(dir, false, nil)
	require.NoError(t, err)
	docs := backend.Collection("planetary_bodies")
	require.NoError(t, docs.Insert(ctx, "sun", json.RawMessage(`{"id":"sun"}`)))
	require.NoError(t, docs.Insert(ctx, "earth", json.RawMessage(`{"id":"earth"}`)))
	require.NoError(t, backend.Close())

	reopened, err := Open(dir, false, nil)
	require.NoError(t, err)
	defer reopened.Close()

	docs = reopened.Collection("planetary_bodies")
	require.NoError(t, docs.Insert(ctx, "moon", json.RawMessage(`{"id":"moon"}`)))

	got, err := docs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.JSONEq(t, `{"id":"sun"}`, string(got[0]))
	assert.JSONEq(t, `{"id":"moon"}`, string(got[2]))
}

func TestBackend_PingAfterClose(t *testing.T) {
	backend, err := Open("", true, nil)
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	assert.Error(t, backend.Ping(context.Background()))
}
