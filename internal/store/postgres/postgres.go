// Package postgres stores collections as JSONB rows in a single documents table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"planetary-server/internal/shared/database"
	"planetary-server/internal/store"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var _ store.Backend = (*Backend)(nil)

type Backend struct {
	db *database.DB
}

// New wraps an open connection. Run db.RunMigrations first.
func New(db *database.DB) *Backend {
	return &Backend{db: db}
}

func (b *Backend) Name() string {
	return "postgres"
}

func (b *Backend) Collection(name string) store.Documents {
	return &collection{db: b.db, name: name}
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *Backend) Close() error {
	return b.db.Close()
}

type collection struct {
	db   *database.DB
	name string
}

func (c *collection) Insert(ctx context.Context, id string, doc json.RawMessage) error {
	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`

	if _, err := c.db.ExecContext(ctx, query, c.name, id, string(doc)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return store.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert %s document: %w", c.name, err)
	}
	return nil
}

func (c *collection) Get(ctx context.Context, id string) (json.RawMessage, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`

	var data []byte
	err := c.db.QueryRowContext(ctx, query, c.name, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s document: %w", c.name, err)
	}
	return json.RawMessage(data), nil
}

func (c *collection) List(ctx context.Context, limit int) ([]json.RawMessage, error) {
	query := `SELECT data FROM documents WHERE collection = $1 ORDER BY seq LIMIT $2`

	rows, err := c.db.QueryContext(ctx, query, c.name, max(0, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", c.name, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", c.name, err)
		}
		docs = append(docs, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s documents: %w", c.name, err)
	}
	return docs, nil
}

// Merge relies on jsonb || replacing top-level keys on the right-hand side.
func (c *collection) Merge(ctx context.Context, id string, fields map[string]json.RawMessage) (json.RawMessage, error) {
	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s patch: %w", c.name, err)
	}

	query := `
		UPDATE documents SET data = data || $3::jsonb
		WHERE collection = $1 AND id = $2
		RETURNING data`

	var data []byte
	err = c.db.QueryRowContext(ctx, query, c.name, id, string(patch)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to merge %s document: %w", c.name, err)
	}
	return json.RawMessage(data), nil
}

func (c *collection) Delete(ctx context.Context, id string) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, c.name, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s document: %w", c.name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read deleted %s count: %w", c.name, err)
	}
	return affected, nil
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE collection = $1`, c.name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s documents: %w", c.name, err)
	}
	return count, nil
}
