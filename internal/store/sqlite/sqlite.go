// Package sqlite keeps collections in a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"planetary-server/internal/store"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	data TEXT NOT NULL,
	UNIQUE (collection, id)
);`

var _ store.Backend = (*Backend)(nil)

type Backend struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Backend, error) {
	logger := slog.With("component", "sqlite", "operation", "open", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection serializes writers and keeps read-modify-write merges atomic.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Info("SQLite database opened successfully")
	return &Backend{db: db}, nil
}

func (b *Backend) Name() string {
	return "sqlite"
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
	db   *sql.DB
	name string
}

func (c *collection) Insert(ctx context.Context, id string, doc json.RawMessage) error {
	result, err := c.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?) ON CONFLICT (collection, id) DO NOTHING`,
		c.name, id, string(doc))
	if err != nil {
		return fmt.Errorf("insert %s document: %w", c.name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert %s document: %w", c.name, err)
	}
	if affected == 0 {
		return store.ErrDuplicateKey
	}
	return nil
}

func (c *collection) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return getDocument(ctx, c.db, c.name, id)
}

func (c *collection) List(ctx context.Context, limit int) ([]json.RawMessage, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT data FROM documents WHERE collection = ? ORDER BY seq LIMIT ?`,
		c.name, max(0, limit))
	if err != nil {
		return nil, fmt.Errorf("list %s documents: %w", c.name, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s document: %w", c.name, err)
		}
		docs = append(docs, json.RawMessage(data))
	}
	return docs, rows.Err()
}

// Merge reads, overlays and writes back in one transaction. json_patch is not
// used because it drops keys whose new value is null.
func (c *collection) Merge(ctx context.Context, id string, fields map[string]json.RawMessage) (json.RawMessage, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin %s merge: %w", c.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getDocument(ctx, tx, c.name, id)
	if err != nil {
		return nil, err
	}

	merged, err := store.MergeDocument(current, fields)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET data = ? WHERE collection = ? AND id = ?`,
		string(merged), c.name, id); err != nil {
		return nil, fmt.Errorf("update %s document: %w", c.name, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s merge: %w", c.name, err)
	}
	return merged, nil
}

func (c *collection) Delete(ctx context.Context, id string) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, c.name, id)
	if err != nil {
		return 0, fmt.Errorf("delete %s document: %w", c.name, err)
	}
	return result.RowsAffected()
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE collection = ?`, c.name).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s documents: %w", c.name, err)
	}
	return count, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getDocument(ctx context.Context, q queryer, name, id string) (json.RawMessage, error) {
	var data string
	err := q.QueryRowContext(ctx, `SELECT data FROM documents WHERE collection = ? AND id = ?`, name, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s document: %w", name, err)
	}
	return json.RawMessage(data), nil
}
