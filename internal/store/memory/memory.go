// Package memory keeps collections in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"planetary-server/internal/store"
)

var _ store.Backend = (*Backend)(nil)

type Backend struct {
	mu          sync.Mutex
	collections map[string]*collection
}

func New() *Backend {
	return &Backend{collections: make(map[string]*collection)}
}

func (b *Backend) Name() string {
	return "memory"
}

func (b *Backend) Collection(name string) store.Documents {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]json.RawMessage)}
		b.collections[name] = c
	}
	return c
}

func (b *Backend) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (b *Backend) Close() error {
	return nil
}

type collection struct {
	mu   sync.RWMutex
	ids  []string
	docs map[string]json.RawMessage
}

func (c *collection) Insert(ctx context.Context, id string, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[id]; exists {
		return store.ErrDuplicateKey
	}
	c.docs[id] = slices.Clone(doc)
	c.ids = append(c.ids, id)
	return nil
}

func (c *collection) Get(ctx context.Context, id string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return slices.Clone(doc), nil
}

func (c *collection) List(ctx context.Context, limit int) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	n := max(0, min(limit, len(c.ids)))
	docs := make([]json.RawMessage, 0, n)
	for _, id := range c.ids[:n] {
		docs = append(docs, slices.Clone(c.docs[id]))
	}
	return docs, nil
}

func (c *collection) Merge(ctx context.Context, id string, fields map[string]json.RawMessage) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	merged, err := store.MergeDocument(doc, fields)
	if err != nil {
		return nil, err
	}
	c.docs[id] = merged
	return slices.Clone(merged), nil
}

func (c *collection) Delete(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return 0, nil
	}
	delete(c.docs, id)
	if i := slices.Index(c.ids, id); i >= 0 {
		c.ids = slices.Delete(c.ids, i, i+1)
	}
	return 1, nil
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.docs)), nil
}
