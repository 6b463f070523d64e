package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/pocketbook/internal/database"
)

// Backend selects where the ledger is persisted.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Pocketbook"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Data struct {
		Backend    Backend `envconfig:"DATA_BACKEND" default:"sqlite"`
		SQLitePath string  `envconfig:"SQLITE_PATH" default:"data/pocketbook.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pocketbook"`
	}

	Server struct {
		Timeout       time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
		CORSOrigins   []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Database returns the SQL driver and DSN for the configured backend. ok is false for
// the memory backend.
func (c *Config) Database() (driver database.Driver, dsn string, ok bool) {
	switch c.Data.Backend {
	case BackendSQLite:
		return database.DriverSQLite, c.Data.SQLitePath, true
	case BackendPostgres:
		return database.DriverPostgres, c.ConnectionString(), true
	}

	return "", "", false
}

func (c *Config) Validate() error {
	switch c.Data.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.Data.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q: want sqlite, postgres or memory", c.Data.Backend)
	}

	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.App.Port)
	}

	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}

	if c.Server.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.Server.SweepInterval)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q: want text or json", c.Log.Format)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
