package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"planetary-server/internal/shared/config"
	"planetary-server/internal/shared/database"
	"planetary-server/internal/store"
	"planetary-server/internal/store/storetest"

	"github.com/stretchr/testify/require"
)

func TestBackend(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) store.Backend {
		ctx := context.Background()

		db, err := database.Open(ctx, dsn, config.DatabaseConfig{
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
		})
		require.NoError(t, err)
		require.NoError(t, db.RunMigrations(ctx))

		_, err = db.ExecContext(ctx, `TRUNCATE documents`)
		require.NoError(t, err)

		backend := New(db)
		t.Cleanup(func() { _ = backend.Close() })
		return backend
	})
}
