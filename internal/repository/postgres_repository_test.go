package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool
// with the state schema applied.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.EnsureSchema(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func TestPostgresRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewPostgresRepository(pool, zerolog.Nop())
	testStateRepository(t, repo)
	assert.NoError(t, repo.Close())

	// Closing the repository leaves the shared pool usable.
	assert.NoError(t, pool.Ping(context.Background()))
}

func TestPostgresRepository_StoresVersion(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresRepository(pool, zerolog.Nop())
	require.NoError(t, repo.Save(ctx, KeyCurrency, testDocument{Name: "eur"}))

	var version int
	var name string
	err := pool.QueryRow(ctx, `SELECT version, body->'data'->>'name' FROM state_documents WHERE key = $1`, KeyCurrency).
		Scan(&version, &name)
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, version)
	assert.Equal(t, "eur", name)
}

func TestPostgresRepository_UnsupportedVersion(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := pool.Exec(ctx,
		`INSERT INTO state_documents (key, version, body) VALUES ($1, 7, $2)`,
		KeyAuth, []byte(`{"version":7,"data":{}}`))
	require.NoError(t, err)

	var doc testDocument
	found, err := NewPostgresRepository(pool, zerolog.Nop()).Load(ctx, KeyAuth, &doc)
	assert.False(t, found)
	assert.ErrorIs(t, err, model.ErrUnsupportedDocument)
}
