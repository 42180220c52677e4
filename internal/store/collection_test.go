package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"planetary-server/internal/store"
	"planetary-server/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      float64   `json:"size"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	errs  []error
}

func (o *recordingObserver) ObserveOperation(collection, operation string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, collection+"."+operation)
	o.errs = append(o.errs, err)
}

func newWidgets(t *testing.T, opts ...store.Option) *store.Collection[widget] {
	t.Helper()
	return store.NewCollection[widget](memory.New(), "widgets", opts...)
}

func TestCollection_InsertGet(t *testing.T) {
	widgets := newWidgets(t)
	ctx := context.Background()
	now := widgets.Now()

	inserted, err := widgets.Insert(ctx, "w1", &widget{ID: "w1", Name: "gear", Size: 2, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "gear", inserted.Name)

	got, err := widgets.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", got.ID)
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestCollection_InsertDuplicate(t *testing.T) {
	widgets := newWidgets(t)
	ctx := context.Background()

	_, err := widgets.Insert(ctx, "w1", &widget{ID: "w1"})
	require.NoError(t, err)

	_, err = widgets.Insert(ctx, "w1", &widget{ID: "w1"})
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestCollection_ListDefaultLimit(t *testing.T) {
	widgets := newWidgets(t)
	ctx := context.Background()

	got, err := widgets.List(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	for _, id := range []string{"b", "a", "c"} {
		_, err := widgets.Insert(ctx, id, &widget{ID: id})
		require.NoError(t, err)
	}

	got, err = widgets.List(ctx, -1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestCollection_ListAllIgnoresLimit(t *testing.T) {
	widgets := newWidgets(t)
	ctx := context.Background()

	got, err := widgets.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	ids := []string{"d", "c", "b", "a"}
	for _, id := range ids {
		_, err := widgets.Insert(ctx, id, &widget{ID: id})
		require.NoError(t, err)
	}

	capped, err := widgets.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)

	got, err = widgets.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, got[i].ID)
	}
}

func TestCollection_MergeUpdate(t *testing.T) {
	clock := &fixedClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	widgets := newWidgets(t, store.WithClock(clock))
	ctx := context.Background()

	created := widgets.Now()
	note := "first"
	_, err := widgets.Insert(ctx, "w1", &widget{ID: "w1", Name: "gear", Size: 2, Note: &note, CreatedAt: created, UpdatedAt: created})
	require.NoError(t, err)

	updated, err := widgets.MergeUpdate(ctx, "w1", store.Fields{
		"size":       3.5,
		"note":       nil,
		"id":         "hijack",
		"created_at": time.Time{},
	})
	require.NoError(t, err)

	assert.Equal(t, "w1", updated.ID)
	assert.Equal(t, "gear", updated.Name)
	assert.Equal(t, 3.5, updated.Size)
	assert.Nil(t, updated.Note)
	assert.True(t, updated.CreatedAt.Equal(created))
	assert.True(t, updated.UpdatedAt.After(created))

	got, err := widgets.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestCollection_MergeUpdateEmptyFieldsStillStamps(t *testing.T) {
	widgets := newWidgets(t)
	ctx := context.Background()

	now := widgets.Now()
	_, err := widgets.Insert(ctx, "w1", &widget{ID: "w1", Name: "gear", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	updated, err := widgets.MergeUpdate(ctx, "w1", store.Fields{})
	require.NoError(t, err)
	assert.Equal(t, "gear", updated.Name)
	assert.True(t, updated.UpdatedAt.After(now))
}

func TestCollection_MergeUpdateMissing(t *testing.T) {
	widgets := newWidgets(t)

	_, err := widgets.MergeUpdate(context.Background(), "nope", store.Fields{"name": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollection_Delete(t *testing.T) {
	widgets := newWidgets(t)
	ctx := context.Background()

	_, err := widgets.Insert(ctx, "w1", &widget{ID: "w1"})
	require.NoError(t, err)

	deleted, err := widgets.Delete(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = widgets.Delete(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	count, err := widgets.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCollection_ObserverSeesEveryOperation(t *testing.T) {
	observer := &recordingObserver{}
	widgets := newWidgets(t, store.WithObserver(observer))
	ctx := context.Background()

	_, _ = widgets.Insert(ctx, "w1", &widget{ID: "w1"})
	_, _ = widgets.Get(ctx, "missing")
	_, _ = widgets.Count(ctx)

	assert.Equal(t, []string{"widgets.insert", "widgets.get", "widgets.count"}, observer.calls)
	assert.NoError(t, observer.errs[0])
	assert.True(t, errors.Is(observer.errs[1], store.ErrNotFound))
}

func TestCollection_CanceledContext(t *testing.T) {
	widgets := newWidgets(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := widgets.Get(ctx, "w1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMergeDocument(t *testing.T) {
	merged, err := store.MergeDocument(json.RawMessage(`{"a":1,"b":{"c":2}}`), map[string]json.RawMessage{
		"b": json.RawMessage(`{"d":3}`),
		"e": json.RawMessage(`null`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":{"d":3},"e":null}`, string(merged))

	_, err = store.MergeDocument(json.RawMessage(`not json`), nil)
	assert.Error(t, err)
}
