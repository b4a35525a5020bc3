package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnvParsesFile(t *testing.T) {
	writeConfigFile(t, `
env:
  serviceName: mediarating
  log:
    level: debug
http:
  port: 9090
  timeouts:
    readTimeout: 15s
store:
  driver: memory
auth:
  bcryptCost: 10
`)

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "mediarating", cfg.Env.ServiceName)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadWithEnvOverridesFromEnvironment(t *testing.T) {
	writeConfigFile(t, `
http:
  port: 8080
`)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTP.Port)
}

func TestLoadWithEnvMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestNewAppliesDefaults(t *testing.T) {
	writeConfigFile(t, `
env:
  serviceName: mediarating
`)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	writeConfigFile(t, `
store:
  driver: cassandra
`)

	_, err := New()
	assert.ErrorContains(t, err, "unknown store driver")
}
