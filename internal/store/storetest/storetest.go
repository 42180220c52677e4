// Package storetest runs the same behavioural checks against every store.Backend.
package storetest

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"planetary-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Run exercises newBackend. Each subtest gets a fresh backend; newBackend
// should register its own cleanup.
func Run(t *testing.T, newBackend func(t *testing.T) store.Backend) {
	t.Helper()

	t.Run("InsertAndGet", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		require.NoError(t, docs.Insert(ctx, "a", json.RawMessage(`{"id":"a","name":"Alpha","tags":["x"]}`)))

		got, err := docs.Get(ctx, "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"a","name":"Alpha","tags":["x"]}`, string(got))
	})

	t.Run("GetMissing", func(t *testing.T) {
		docs := newBackend(t).Collection("things")

		_, err := docs.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("InsertDuplicate", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		require.NoError(t, docs.Insert(ctx, "a", json.RawMessage(`{"id":"a","v":1}`)))
		err := docs.Insert(ctx, "a", json.RawMessage(`{"id":"a","v":2}`))
		assert.ErrorIs(t, err, store.ErrDuplicateKey)

		got, err := docs.Get(ctx, "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"a","v":1}`, string(got))

		count, err := docs.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ListKeepsInsertionOrder", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		ids := []string{"zeta", "alpha", "mid", "beta"}
		for i, id := range ids {
			require.NoError(t, docs.Insert(ctx, id, json.RawMessage(fmt.Sprintf(`{"id":%q,"n":%d}`, id, i))))
		}

		got, err := docs.List(ctx, 100)
		require.NoError(t, err)
		require.Len(t, got, len(ids))
		for i, id := range ids {
			assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"n":%d}`, id, i), string(got[i]))
		}
	})

	t.Run("ListRespectsLimit", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		for i := range 5 {
			require.NoError(t, docs.Insert(ctx, fmt.Sprintf("id-%d", i), json.RawMessage(`{}`)))
		}

		got, err := docs.List(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = docs.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		docs := newBackend(t).Collection("things")

		got, err := docs.List(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("MergeOverlaysTopLevelKeys", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		require.NoError(t, docs.Insert(ctx, "a", json.RawMessage(`{"id":"a","name":"Alpha","radius":2,"texture":"t.png"}`)))

		merged, err := docs.Merge(ctx, "a", map[string]json.RawMessage{
			"radius":  json.RawMessage(`5.5`),
			"texture": json.RawMessage(`null`),
			"facts":   json.RawMessage(`["one"]`),
		})
		require.NoError(t, err)
		want := `{"id":"a","name":"Alpha","radius":5.5,"texture":null,"facts":["one"]}`
		assert.JSONEq(t, want, string(merged))

		got, err := docs.Get(ctx, "a")
		require.NoError(t, err)
		assert.JSONEq(t, want, string(got))
	})

	t.Run("MergeMissing", func(t *testing.T) {
		docs := newBackend(t).Collection("things")

		_, err := docs.Merge(context.Background(), "missing", map[string]json.RawMessage{"v": json.RawMessage(`1`)})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("MergeKeepsOrder", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, docs.Insert(ctx, id, json.RawMessage(fmt.Sprintf(`{"id":%q}`, id))))
		}
		_, err := docs.Merge(ctx, "a", map[string]json.RawMessage{"touched": json.RawMessage(`true`)})
		require.NoError(t, err)

		got, err := docs.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.JSONEq(t, `{"id":"a","touched":true}`, string(got[0]))
	})

	t.Run("Delete", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		require.NoError(t, docs.Insert(ctx, "a", json.RawMessage(`{"id":"a"}`)))
		require.NoError(t, docs.Insert(ctx, "b", json.RawMessage(`{"id":"b"}`)))

		deleted, err := docs.Delete(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		deleted, err = docs.Delete(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)

		_, err = docs.Get(ctx, "a")
		assert.ErrorIs(t, err, store.ErrNotFound)

		got, err := docs.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.JSONEq(t, `{"id":"b"}`, string(got[0]))
	})

	t.Run("DeletedIdCanBeReused", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		require.NoError(t, docs.Insert(ctx, "a", json.RawMessage(`{"v":1}`)))
		_, err := docs.Delete(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, docs.Insert(ctx, "a", json.RawMessage(`{"v":2}`)))

		got, err := docs.Get(ctx, "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("CollectionsAreIndependent", func(t *testing.T) {
		backend := newBackend(t)
		ctx := context.Background()
		bodies := backend.Collection("bodies")
		systems := backend.Collection("systems")

		require.NoError(t, bodies.Insert(ctx, "shared", json.RawMessage(`{"kind":"body"}`)))
		require.NoError(t, systems.Insert(ctx, "shared", json.RawMessage(`{"kind":"system"}`)))

		got, err := systems.Get(ctx, "shared")
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"system"}`, string(got))

		bodyCount, err := bodies.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), bodyCount)

		_, err = bodies.Delete(ctx, "shared")
		require.NoError(t, err)
		_, err = systems.Get(ctx, "shared")
		assert.NoError(t, err)
	})

	t.Run("ConcurrentMergesAllApply", func(t *testing.T) {
		docs := newBackend(t).Collection("things")
		ctx := context.Background()

		require.NoError(t, docs.Insert(ctx, "a", json.RawMessage(`{"id":"a"}`)))

		const writers = 4
		var g errgroup.Group
		for i := range writers {
			g.Go(func() error {
				_, err := docs.Merge(ctx, "a", map[string]json.RawMessage{
					fmt.Sprintf("k%d", i): json.RawMessage(`true`),
				})
				return err
			})
		}
		require.NoError(t, g.Wait())

		got, err := docs.Get(ctx, "a")
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(got, &fields))
		for i := range writers {
			assert.Contains(t, fields, fmt.Sprintf("k%d", i))
		}
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newBackend(t).Ping(context.Background()))
	})
}
