// Package config manages environment variables and the optional config file.
//
// It reads variables from the process environment (and from a `.env` file
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Load an optional YAML config file.
//   - Load environment variables (optionally from a `.env` file) on top of it.
//   - Map everything into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults so the service runs with no configuration at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any of the code below reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix JOKES_. Keys are lowercased and the
	prefix removed; nesting uses the "." delimiter, so
	JOKES_SERVER.PORT -> server.port -> Config.Server.Port.

	Load order (later wins): defaults -> YAML file -> environment.
*/

// EnvPrefix is the prefix shared by every environment variable the service reads.
const EnvPrefix = "JOKES_"

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvLocal       = "local"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	// DefaultSQLitePath is used outside production when no path is configured.
	DefaultSQLitePath = "jokes.db"

	// ProductionSQLitePath is the volume-mounted location used in production.
	ProductionSQLitePath = "/data/jokes.db"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	StaticDir          string   `koanf:"static_dir"`
}

// DatabaseConfig selects the joke store backend.
//
// Driver "sqlite" stores jokes in the file at Path. Driver "postgres"
// connects using DSN. Pool settings apply to both; durations are seconds.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	Path            string `koanf:"path"`
	DSN             string `koanf:"dsn" validate:"required_if=Driver postgres"`
	Seed            bool   `koanf:"seed"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// RedisConfig contains Redis connection details.
// An empty Address disables Redis and the background job worker.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == EnvProduction
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: EnvDevelopment},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        15,
			WriteTimeout:       15,
			IdleTimeout:        60,
			ShutdownTimeout:    5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Seed:            true,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// Option customises LoadConfig.
type Option func(*loader)

type loader struct {
	filePath string
}

// WithConfigFile loads the YAML file at path before the environment.
func WithConfigFile(path string) Option {
	return func(l *loader) {
		l.filePath = path
	}
}

// LoadConfig loads configuration from defaults, the optional config file and
// environment variables, validates it and returns the resulting config.
//
// Behavior summary:
//   - Starts from Default()
//   - Loads the YAML file (if any)
//   - Loads env vars with prefix JOKES_
//   - Unmarshals into Config (fields absent from every source keep defaults)
//   - Resolves the SQLite path from the environment (production vs default)
//   - Validates struct tags, then observability rules
func LoadConfig(opts ...Option) (*Config, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if l.filePath != "" {
		if err := k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", l.filePath, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal fills the defaults in place; keys nobody set are left alone.
	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	if mainConfig.Observability.ServiceName == "" {
		mainConfig.Observability.ServiceName = DefaultServiceName
	}
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	mainConfig.Database.Path = ResolveSQLitePath(mainConfig.Primary.Env, mainConfig.Database.Path)

	if err := Validate(mainConfig); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs struct-tag validation followed by the observability rules.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Database.Driver == DriverSQLite && strings.TrimSpace(cfg.Database.Path) == "" {
		return fmt.Errorf("config validation failed: database.path is required for the sqlite driver")
	}

	if cfg.Observability != nil {
		if err := cfg.Observability.Validate(); err != nil {
			return fmt.Errorf("invalid observability config: %w", err)
		}
	}

	return nil
}

// ResolveSQLitePath returns path when set, otherwise the default location for env.
func ResolveSQLitePath(env, path string) string {
	if strings.TrimSpace(path) != "" {
		return path
	}
	if env == EnvProduction {
		return ProductionSQLitePath
	}
	return DefaultSQLitePath
}

// EnsureDataDir creates the parent directory of a SQLite database file.
func EnsureDataDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return nil
}

// ShutdownGrace returns the grace period granted to in-flight requests.
func (s ServerConfig) ShutdownGrace() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}
