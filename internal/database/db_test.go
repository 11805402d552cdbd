package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/daily-reports/internal/config"
	"github.com/valeriaulyamaeva/daily-reports/internal/database"
)

func TestConnectDBSelectsDriver(t *testing.T) {
	cfg := config.Config{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "r.db")}
	store, err := database.ConnectDB(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = store.Close(context.Background()) }()

	_, ok := store.(*database.SQLiteStore)
	assert.True(t, ok)
}

func TestConnectDBUnknownDriver(t *testing.T) {
	_, err := database.ConnectDB(context.Background(), config.Config{Driver: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}
