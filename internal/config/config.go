// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config.
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (server timeouts, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the DISPENSER_ prefix. The prefix is removed and
	the rest is lowercased; "." separates nested blocks:

		DISPENSER_SERVER.PORT        -> server.port        -> Config.Server.Port
		DISPENSER_STORE.DRIVER       -> store.driver       -> Config.Store.Driver
		DISPENSER_FIREBASE.PROJECT_ID -> firebase.project_id -> Config.Firebase.ProjectID
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "DISPENSER_"

const (
	StoreDriverFirestore = "firestore"
	StoreDriverPostgres  = "postgres"

	AuthProviderFirebase = "firebase"
	AuthProviderClerk    = "clerk"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Firebase      FirebaseConfig       `koanf:"firebase"`
	Database      DatabaseConfig       `koanf:"database"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port         string `koanf:"port"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout int    `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"gte=0"`
}

// StoreConfig selects the document store backing dispensers and drinks.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=firestore postgres"`
}

// FirebaseConfig configures the Firebase app shared by Firestore and Firebase Auth.
//
// CredentialsFile is optional; without it Application Default Credentials are used.
type FirebaseConfig struct {
	ProjectID       string `koanf:"project_id"`
	CredentialsFile string `koanf:"credentials_file"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Only required when Store.Driver is "postgres".
type DatabaseConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// AuthConfig selects the identity provider used to verify bearer tokens.
//
// SecretKey is the Clerk secret key and is only needed for the clerk provider.
type AuthConfig struct {
	Provider  string `koanf:"provider" validate:"required,oneof=firebase clerk"`
	SecretKey string `koanf:"secret_key"`
}

// Validate applies the rules that depend on which store and auth provider
// were selected.
func (c *Config) Validate() error {
	if c.Store.Driver == StoreDriverPostgres {
		db := c.Database
		if db.Host == "" || db.Port == 0 || db.User == "" || db.Name == "" {
			return fmt.Errorf("database host, port, user and name are required for the %s store", StoreDriverPostgres)
		}
	}

	if c.Auth.Provider == AuthProviderClerk && c.Auth.SecretKey == "" {
		return fmt.Errorf("auth secret_key is required for the %s provider", AuthProviderClerk)
	}

	return nil
}

// NeedsFirebase reports whether a Firebase app must be initialized.
func (c *Config) NeedsFirebase() bool {
	return c.Store.Driver == StoreDriverFirestore || c.Auth.Provider == AuthProviderFirebase
}

// applyDefaults fills optional values that were not provided.
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults and returns the result.
//
// Observability defaults are injected when the block is absent, and its
// service name and environment are always derived from this service.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
