package app

import (
	"context"
	"fmt"
	"log/slog"

	"planetary-server/internal/shared/config"
	"planetary-server/internal/shared/database"
	sharedredis "planetary-server/internal/shared/redis"
	"planetary-server/internal/store"
	badgerstore "planetary-server/internal/store/badger"
	"planetary-server/internal/store/memory"
	"planetary-server/internal/store/postgres"
	"planetary-server/internal/store/redisstore"
	"planetary-server/internal/store/sqlite"
)

// OpenBackend connects the store backend named by cfg.Store.Backend
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Backend, error) {
	logger = logger.With("component", "store", "operation", "open", "backend", cfg.Store.Backend)
	logger.Info("Opening store backend")

	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return memory.New(), nil

	case config.BackendPostgres:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return postgres.New(db), nil

	case config.BackendSQLite:
		return sqlite.Open(ctx, cfg.SQLite.Path)

	case config.BackendBadger:
		return badgerstore.Open(cfg.Badger.Path, cfg.Badger.InMemory, logger)

	case config.BackendRedis:
		client, err := sharedredis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redisstore.New(client, cfg.Redis.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
