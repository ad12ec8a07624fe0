package config

import "time"

// MetricsConfig controls the Prometheus endpoint. Game and mediator metrics
// are only collected while it is enabled.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port for the HTTP metrics server
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Host to bind the metrics HTTP server (default: localhost)
	Host string `mapstructure:"host"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`

	// How long to wait for in-flight scrapes when the CLI exits
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}
