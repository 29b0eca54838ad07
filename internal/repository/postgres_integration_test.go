package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/db"
)

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("boutique"),
		postgres.WithUsername("boutique"),
		postgres.WithPassword("boutique"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	url, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, db.Migrate(url))
	pool, err := db.NewPostgres(ctx, db.PoolConfig{URL: url, MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	testRepositories(t, func(t *testing.T) *Repositories {
		_, err := pool.Exec(ctx, `TRUNCATE products, orders, order_items, hero_slides,
			subcategories, available_sizes, available_colors, admins`)
		require.NoError(t, err)
		for k, v := range DefaultSettings {
			_, err := pool.Exec(ctx, `
				INSERT INTO store_settings (key, value) VALUES ($1, $2)
				ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, k, v)
			require.NoError(t, err)
		}
		return NewPostgres(pool)
	})

	t.Run("migrations roll back", func(t *testing.T) {
		require.NoError(t, db.MigrateDown(url))
		require.NoError(t, db.Migrate(url))
	})
}
