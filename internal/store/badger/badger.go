// Package badger keeps collections in an embedded Badger key-value store.
//
// Each collection uses three key families:
//
//	<collection>:doc:<id>    the JSON document
//	<collection>:pos:<id>    the insertion sequence of id
//	<collection>:seq:<n>     id, ordered by the big-endian sequence n
package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"planetary-server/internal/store"

	"github.com/dgraph-io/badger/v4"
)

const (
	sequenceBandwidth = 100
	maxTxnRetries     = 10
)

var _ store.Backend = (*Backend)(nil)

type Backend struct {
	db     *badger.DB
	logger *slog.Logger

	mu        sync.Mutex
	sequences map[string]*badger.Sequence
}

// Open opens the database at path, or a purely in-memory one when inMemory is set.
func Open(path string, inMemory bool, logger *slog.Logger) (*Backend, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil
	opts.SyncWrites = !inMemory
	opts.CompactL0OnClose = !inMemory

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "badger")
	logger.Info("Badger database opened successfully", "path", path, "in_memory", inMemory)

	return &Backend{
		db:        db,
		logger:    logger,
		sequences: make(map[string]*badger.Sequence),
	}, nil
}

func (b *Backend) Name() string {
	return "badger"
}

func (b *Backend) Collection(name string) store.Documents {
	return &collection{backend: b, name: name}
}

func (b *Backend) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	for name, seq := range b.sequences {
		if err := seq.Release(); err != nil {
			b.logger.Warn("Failed to release sequence", "collection", name, "error", err)
		}
	}
	b.sequences = map[string]*badger.Sequence{}
	b.mu.Unlock()

	return b.db.Close()
}

func (b *Backend) nextSeq(name string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seq, ok := b.sequences[name]
	if !ok {
		var err error
		seq, err = b.db.GetSequence([]byte(name+":sequence"), sequenceBandwidth)
		if err != nil {
			return 0, fmt.Errorf("failed to open %s sequence: %w", name, err)
		}
		b.sequences[name] = seq
	}
	return seq.Next()
}

// update retries txn conflicts caused by concurrent writers on the same keys
func (b *Backend) update(fn func(txn *badger.Txn) error) error {
	var err error
	for range maxTxnRetries {
		err = b.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

type collection struct {
	backend *Backend
	name    string
}

func (c *collection) docKey(id string) []byte { return []byte(c.name + ":doc:" + id) }
func (c *collection) posKey(id string) []byte { return []byte(c.name + ":pos:" + id) }
func (c *collection) seqPrefix() []byte       { return []byte(c.name + ":seq:") }

func (c *collection) seqKey(pos []byte) []byte {
	return append(c.seqPrefix(), pos...)
}

func (c *collection) Insert(ctx context.Context, id string, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := c.backend.nextSeq(c.name)
	if err != nil {
		return err
	}
	pos := binary.BigEndian.AppendUint64(nil, n)

	return c.backend.update(func(txn *badger.Txn) error {
		_, err := txn.Get(c.docKey(id))
		if err == nil {
			return store.ErrDuplicateKey
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := txn.Set(c.docKey(id), doc); err != nil {
			return fmt.Errorf("failed to set document: %w", err)
		}
		if err := txn.Set(c.posKey(id), pos); err != nil {
			return fmt.Errorf("failed to set position: %w", err)
		}
		if err := txn.Set(c.seqKey(pos), []byte(id)); err != nil {
			return fmt.Errorf("failed to set order key: %w", err)
		}
		return nil
	})
}

func (c *collection) Get(ctx context.Context, id string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc json.RawMessage
	err := c.backend.db.View(func(txn *badger.Txn) error {
		var err error
		doc, err = getValue(txn, c.docKey(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *collection) List(ctx context.Context, limit int) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var docs []json.RawMessage
	err := c.backend.db.View(func(txn *badger.Txn) error {
		prefix := c.seqPrefix()
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(docs) < limit; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("failed to read order key: %w", err)
			}

			doc, err := getValue(txn, c.docKey(string(id)))
			if errors.Is(err, store.ErrNotFound) {
				c.backend.logger.Warn("Order key without document", "collection", c.name, "id", string(id))
				continue
			}
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *collection) Merge(ctx context.Context, id string, fields map[string]json.RawMessage) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged json.RawMessage
	err := c.backend.update(func(txn *badger.Txn) error {
		current, err := getValue(txn, c.docKey(id))
		if err != nil {
			return err
		}

		merged, err = store.MergeDocument(current, fields)
		if err != nil {
			return err
		}
		return txn.Set(c.docKey(id), merged)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (c *collection) Delete(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var deleted int64
	err := c.backend.update(func(txn *badger.Txn) error {
		deleted = 0

		pos, err := getValue(txn, c.posKey(id))
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, key := range [][]byte{c.docKey(id), c.posKey(id), c.seqKey(pos)} {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("failed to delete key: %w", err)
			}
		}
		deleted = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := c.backend.db.View(func(txn *badger.Txn) error {
		prefix := []byte(c.name + ":doc:")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func getValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	return item.ValueCopy(nil)
}
