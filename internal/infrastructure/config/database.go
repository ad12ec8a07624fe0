package config

import "time"

// DatabaseConfig holds session storage configuration.
// Sessions live for one process only, so the default is an in-memory SQLite database.
type DatabaseConfig struct {
	// Connection type: only "sqlite" is supported
	Type string `mapstructure:"type" validate:"required,oneof=sqlite"`

	// SQLite path (file path or ":memory:")
	Path string `mapstructure:"path" validate:"required"`

	// Connection pool settings
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// IsInMemory reports whether the database disappears with the process
func (d DatabaseConfig) IsInMemory() bool {
	return d.Path == "" || d.Path == ":memory:"
}
