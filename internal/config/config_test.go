package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISPENSER_PRIMARY.ENV", "local")
	t.Setenv("DISPENSER_STORE.DRIVER", "firestore")
	t.Setenv("DISPENSER_AUTH.PROVIDER", "firebase")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, StoreDriverFirestore, cfg.Store.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.True(t, cfg.NeedsFirebase())
}

func TestLoadConfig_NestedKeys(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISPENSER_SERVER.PORT", "9090")
	t.Setenv("DISPENSER_FIREBASE.PROJECT_ID", "bar-robot")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "bar-robot", cfg.Firebase.ProjectID)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISPENSER_STORE.DRIVER", "mongo")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_PostgresNeedsDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISPENSER_STORE.DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("DISPENSER_DATABASE.HOST", "localhost")
	t.Setenv("DISPENSER_DATABASE.PORT", "5432")
	t.Setenv("DISPENSER_DATABASE.USER", "bar")
	t.Setenv("DISPENSER_DATABASE.NAME", "bar")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.True(t, cfg.NeedsFirebase(), "firebase auth still needs the app")
}

func TestConfigValidate_ClerkNeedsSecret(t *testing.T) {
	cfg := &Config{
		Store: StoreConfig{Driver: StoreDriverFirestore},
		Auth:  AuthConfig{Provider: AuthProviderClerk},
	}
	assert.Error(t, cfg.Validate())

	cfg.Auth.SecretKey = "sk_test"
	assert.NoError(t, cfg.Validate())
}

func TestObservabilityConfig(t *testing.T) {
	c := &ObservabilityConfig{ServiceName: ServiceName, Environment: "production"}
	require.NoError(t, c.Validate())
	assert.Equal(t, "info", c.GetLogLevel())
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, 5*time.Second, c.HealthChecks.Timeout)

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "verbose"
	assert.Error(t, c.Validate())
}
