package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Observer receives the outcome of every collection operation
type Observer interface {
	ObserveOperation(collection, operation string, duration time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveOperation(string, string, time.Duration, error) {}

type collectionOptions struct {
	clock    Clock
	observer Observer
	logger   *slog.Logger
}

type Option func(*collectionOptions)

func WithClock(clock Clock) Option {
	return func(o *collectionOptions) { o.clock = clock }
}

func WithObserver(observer Observer) Option {
	return func(o *collectionOptions) { o.observer = observer }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *collectionOptions) { o.logger = logger }
}

// Fields holds a partial update keyed by JSON field name
type Fields map[string]any

// Collection is a typed view of one document collection.
// R must round-trip through encoding/json.
type Collection[R any] struct {
	name     string
	docs     Documents
	clock    Clock
	observer Observer
	logger   *slog.Logger
}

func NewCollection[R any](backend Backend, name string, opts ...Option) *Collection[R] {
	o := collectionOptions{
		clock:    NewMonotonicClock(),
		observer: noopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Collection[R]{
		name:     name,
		docs:     backend.Collection(name),
		clock:    o.clock,
		observer: o.observer,
		logger:   o.logger.With("component", "collection", "collection", name),
	}
}

func (c *Collection[R]) Name() string {
	return c.name
}

// Now reads the collection clock; records stamped with it order correctly against MergeUpdate
func (c *Collection[R]) Now() time.Time {
	return c.clock.Now()
}

func (c *Collection[R]) Insert(ctx context.Context, id string, record *R) (_ *R, err error) {
	defer c.observe("insert", time.Now(), &err)
	logger := c.logger.With("operation", "insert", "id", id)

	doc, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s document: %w", c.name, err)
	}

	if err := c.docs.Insert(ctx, id, doc); err != nil {
		logger.Debug("Insert rejected", "error", err)
		return nil, err
	}

	logger.Debug("Document inserted")
	return record, nil
}

func (c *Collection[R]) Get(ctx context.Context, id string) (_ *R, err error) {
	defer c.observe("get", time.Now(), &err)

	doc, err := c.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.decode(doc)
}

// List returns up to limit records in insertion order; limit <= 0 means DefaultListLimit
func (c *Collection[R]) List(ctx context.Context, limit int) (_ []R, err error) {
	defer c.observe("list", time.Now(), &err)

	if limit <= 0 {
		limit = DefaultListLimit
	}

	docs, err := c.docs.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	records := make([]R, 0, len(docs))
	for _, doc := range docs {
		record, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	c.logger.Debug("Documents listed", "operation", "list", "count", len(records), "limit", limit)
	return records, nil
}

// ListAll returns every record in insertion order regardless of any list cap.
// Records inserted between its count and its read are not included.
func (c *Collection[R]) ListAll(ctx context.Context) ([]R, error) {
	count, err := c.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []R{}, nil
	}
	return c.List(ctx, int(count))
}

// MergeUpdate changes only the keys present in fields and stamps updated_at.
// id and created_at are never overwritten.
func (c *Collection[R]) MergeUpdate(ctx context.Context, id string, fields Fields) (_ *R, err error) {
	defer c.observe("merge_update", time.Now(), &err)
	logger := c.logger.With("operation", "merge_update", "id", id)

	encoded := make(map[string]json.RawMessage, len(fields)+1)
	for key, value := range fields {
		if key == FieldID || key == FieldCreatedAt {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", key, err)
		}
		encoded[key] = raw
	}

	updatedAt, err := json.Marshal(c.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", FieldUpdatedAt, err)
	}
	encoded[FieldUpdatedAt] = updatedAt

	doc, err := c.docs.Merge(ctx, id, encoded)
	if err != nil {
		logger.Debug("Merge rejected", "error", err)
		return nil, err
	}

	logger.Debug("Document merged", "fields", len(encoded))
	return c.decode(doc)
}

func (c *Collection[R]) Delete(ctx context.Context, id string) (_ int64, err error) {
	defer c.observe("delete", time.Now(), &err)

	deleted, err := c.docs.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	c.logger.Debug("Document delete finished", "operation", "delete", "id", id, "deleted", deleted)
	return deleted, nil
}

func (c *Collection[R]) Count(ctx context.Context) (_ int64, err error) {
	defer c.observe("count", time.Now(), &err)
	return c.docs.Count(ctx)
}

func (c *Collection[R]) decode(doc json.RawMessage) (*R, error) {
	var record R
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", c.name, err)
	}
	return &record, nil
}

func (c *Collection[R]) observe(operation string, start time.Time, errp *error) {
	err := *errp
	c.observer.ObserveOperation(c.name, operation, time.Since(start), err)

	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrDuplicateKey) {
		c.logger.Error("Collection operation failed", "operation", operation, "error", err)
	}
}
