package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/self-focus/backend/config"
	"github.com/self-focus/backend/internal/integration/persistence/model"
)

func TestOpenSQLite(t *testing.T) {
	database, err := Open(&config.DatabaseConfig{Driver: config.DriverSQLite, URL: MemoryDSN})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate())
	assert.True(t, database.HealthCheck())

	for _, m := range model.All() {
		assert.True(t, database.DB().Migrator().HasTable(m), "%T", m)
	}
	assert.True(t, database.DB().Migrator().HasIndex(&model.HabitLogModel{}, "idx_habit_logs_habit_date"))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
