package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/construction-sim/internal/adapters/persistence"
	"github.com/andrescamacho/construction-sim/internal/infrastructure/config"
	"github.com/andrescamacho/construction-sim/internal/infrastructure/database"
)

func TestNewConnection_InMemoryStoreOutlivesMaxLifetime(t *testing.T) {
	// Arrange
	db, err := database.NewConnection(&config.DatabaseConfig{
		Type: "sqlite",
		Path: ":memory:",
		Pool: config.PoolConfig{MaxOpen: 4, MaxIdle: 4, MaxLifetime: 50 * time.Millisecond},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	model := &persistence.GameSessionModel{
		ID:        "0b9d6c1e-4f7a-4d55-9a43-2f8f7c1d0e11",
		Seed:      1,
		Targets:   "{}",
		Month:     1,
		Log:       "[]",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(model).Error)

	// Act
	time.Sleep(200 * time.Millisecond)
	var count int64
	err = db.Model(&persistence.GameSessionModel{}).Count(&count).Error

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewConnection_EmptyPathIsInMemory(t *testing.T) {
	// Arrange
	cfg := &config.DatabaseConfig{Type: "sqlite"}

	// Act
	db, err := database.NewConnection(cfg)

	// Assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	assert.True(t, cfg.IsInMemory())
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewConnection_RejectsUnknownType(t *testing.T) {
	// Act
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "postgres", Path: "x"})

	// Assert
	assert.ErrorContains(t, err, "unsupported database type")
}
