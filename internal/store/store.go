// Package store is the document persistence layer. Each record family lives in
// its own named collection of JSON documents keyed by a string id; a Backend
// decides where those documents are kept.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// DefaultListLimit caps List when the caller does not ask for less
	DefaultListLimit = 1000

	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("document id already exists")
)

// Documents is one collection of raw JSON documents.
// Every method is atomic for the single document it touches.
type Documents interface {
	// Insert stores doc under id and fails with ErrDuplicateKey if id is taken.
	Insert(ctx context.Context, id string, doc json.RawMessage) error
	Get(ctx context.Context, id string) (json.RawMessage, error)
	// List returns at most limit documents in insertion order.
	List(ctx context.Context, limit int) ([]json.RawMessage, error)
	// Merge overwrites the top-level keys in fields and returns the merged document.
	Merge(ctx context.Context, id string, fields map[string]json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Backend hands out collections that share one underlying database
type Backend interface {
	Name() string
	Collection(name string) Documents
	Ping(ctx context.Context) error
	Close() error
}

// MergeDocument overlays fields on the top-level keys of doc.
// Backends that cannot merge natively use it inside their read-modify-write.
func MergeDocument(doc json.RawMessage, fields map[string]json.RawMessage) (json.RawMessage, error) {
	var current map[string]json.RawMessage
	if err := json.Unmarshal(doc, &current); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if current == nil {
		current = make(map[string]json.RawMessage, len(fields))
	}

	for key, value := range fields {
		current[key] = value
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return merged, nil
}
