// Package redisstore keeps each collection in a Redis hash of documents plus a
// sorted set that records insertion order.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sharedredis "planetary-server/internal/shared/redis"
	"planetary-server/internal/store"

	"github.com/redis/go-redis/v9"
)

const maxWatchRetries = 10

var _ store.Backend = (*Backend)(nil)

type Backend struct {
	client *sharedredis.Client
	prefix string
}

func New(client *sharedredis.Client, keyPrefix string) *Backend {
	return &Backend{client: client, prefix: keyPrefix}
}

func (b *Backend) Name() string {
	return "redis"
}

func (b *Backend) Collection(name string) store.Documents {
	base := b.prefix + ":" + name
	return &collection{
		client:   b.client,
		name:     name,
		docsKey:  base + ":docs",
		orderKey: base + ":order",
		seqKey:   base + ":seq",
	}
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Backend) Close() error {
	return b.client.Close()
}

type collection struct {
	client   *sharedredis.Client
	name     string
	docsKey  string
	orderKey string
	seqKey   string
}

func (c *collection) Insert(ctx context.Context, id string, doc json.RawMessage) error {
	seq, err := c.client.Incr(ctx, c.seqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate %s sequence: %w", c.name, err)
	}

	var added *redis.BoolCmd
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.HSetNX(ctx, c.docsKey, id, string(doc))
		pipe.ZAddNX(ctx, c.orderKey, redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s document: %w", c.name, err)
	}
	if !added.Val() {
		return store.ErrDuplicateKey
	}
	return nil
}

func (c *collection) Get(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := c.client.HGet(ctx, c.docsKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s document: %w", c.name, err)
	}
	return json.RawMessage(data), nil
}

func (c *collection) List(ctx context.Context, limit int) ([]json.RawMessage, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := c.client.ZRange(ctx, c.orderKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s order: %w", c.name, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	values, err := c.client.HMGet(ctx, c.docsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", c.name, err)
	}

	docs := make([]json.RawMessage, 0, len(values))
	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			continue
		}
		docs = append(docs, json.RawMessage(data))
	}
	return docs, nil
}

// Merge watches the hash so a concurrent writer aborts and retries the read-modify-write.
func (c *collection) Merge(ctx context.Context, id string, fields map[string]json.RawMessage) (json.RawMessage, error) {
	var merged json.RawMessage

	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, c.docsKey, id).Result()
		if errors.Is(err, redis.Nil) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read %s document: %w", c.name, err)
		}

		merged, err = store.MergeDocument(json.RawMessage(current), fields)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, c.docsKey, id, string(merged))
			return nil
		})
		return err
	}

	for range maxWatchRetries {
		err := c.client.Watch(ctx, txf, c.docsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return merged, nil
	}
	return nil, fmt.Errorf("failed to merge %s document %s: too much contention", c.name, id)
}

func (c *collection) Delete(ctx context.Context, id string) (int64, error) {
	var removed *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, c.docsKey, id)
		pipe.ZRem(ctx, c.orderKey, id)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s document: %w", c.name, err)
	}
	return removed.Val(), nil
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	count, err := c.client.HLen(ctx, c.docsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s documents: %w", c.name, err)
	}
	return count, nil
}
