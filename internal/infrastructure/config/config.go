package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
}

type BackendConfig struct {
	// BaseURL is the root of the REST backend, including the /api prefix.
	BaseURL string `env:"API_BASE_URL, default=http://localhost:8080/api"`
	// Timeout applies to every outgoing request.
	Timeout time.Duration `env:"API_TIMEOUT, default=15s"`
	// DashboardCap bounds how many usuarios/perfiles the dashboard pulls.
	DashboardCap int `env:"DASHBOARD_CAP, default=100"`
}

type SessionConfig struct {
	// File is where the session token and user record are persisted.
	File string `env:"SESSION_FILE, default=.admin-console/session.json"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
