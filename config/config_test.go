package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "./socialnotes.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, []string{"overlord"}, cfg.Users.ElevatedUsers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SOCIALNOTES_SERVER_PORT", "9090")
	t.Setenv("SOCIALNOTES_SECURITY_JWT_SECRET", "from-the-env")
	t.Setenv("SOCIALNOTES_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-the-env", cfg.Security.JWTSecret)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, "./socialnotes.db", cfg.Database.Path)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
database:
  path: /tmp/notes.db
users:
  elevated_users:
    - boss
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "/tmp/notes.db", cfg.Database.Path)
	assert.Equal(t, []string{"boss"}, cfg.Users.ElevatedUsers)
	assert.Equal(t, 24*time.Hour, cfg.Security.TokenTTL)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7070\"\n"), 0o600))
	t.Setenv("SOCIALNOTES_SERVER_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestIsReservedUsername(t *testing.T) {
	cfg := &Config{
		Users: UsersConfig{
			ElevatedUsers:     []string{"overlord"},
			ReservedUsernames: []string{"admin", "root"},
		},
	}

	assert.True(t, cfg.IsReservedUsername("admin"))
	assert.True(t, cfg.IsReservedUsername("root"))
	assert.True(t, cfg.IsReservedUsername("overlord"))
	assert.False(t, cfg.IsReservedUsername("alice"))
	assert.False(t, cfg.IsReservedUsername("Admin"))
}
