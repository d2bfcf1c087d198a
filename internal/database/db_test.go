package database

import (
	"context"
	"testing"

	"github.com/Totarae/shortlinks/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@host:5432/db?sslmode=disable", migrateURL("postgres://u:p@host:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://host/db", migrateURL("postgresql://host/db"))
	assert.Equal(t, "pgx5://host/db", migrateURL("pgx5://host/db"))
}

func TestNewDB_EmptyDSN(t *testing.T) {
	_, err := NewDB(context.Background(), "", zap.NewNop())
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	dsn := testutils.StartPostgres(t)
	logger := zap.NewNop()

	require.NoError(t, Migrate(dsn, logger))
	require.NoError(t, Migrate(dsn, logger))

	db, err := NewDB(context.Background(), dsn, logger)
	require.NoError(t, err)
	defer db.Close()

	var exists bool
	err = db.Pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'links')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}
