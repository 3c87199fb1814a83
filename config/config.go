// Package config loads the server configuration from defaults, an
// optional yaml file, and environment variable overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "SOCIALNOTES_CONFIG"

// envPrefix namespaces the environment overrides, e.g.
// SOCIALNOTES_SERVER_PORT=9090 sets server.port.
const envPrefix = "SOCIALNOTES_"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Users    UsersConfig    `koanf:"users"`
	CORS     CORSConfig     `koanf:"cors"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port         string        `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type SecurityConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

type UsersConfig struct {
	// ElevatedUsers are seeded with the shared admin role at startup.
	ElevatedUsers []string `koanf:"elevated_users"`

	// ReservedUsernames cannot be registered. Elevated usernames are
	// implicitly reserved as well.
	ReservedUsernames []string `koanf:"reserved_usernames"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "./socialnotes.db",
		},
		Security: SecurityConfig{
			JWTSecret:  "",
			TokenTTL:   24 * time.Hour,
			BcryptCost: 10,
		},
		Users: UsersConfig{
			ElevatedUsers:     []string{"overlord"},
			ReservedUsernames: []string{"admin", "root", "superuser"},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
				"http://localhost:8080",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. An empty path falls back to the
// SOCIALNOTES_CONFIG env var, then to ./config.yaml if one exists; a
// missing file is not an error unless it was requested explicitly.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := path != ""
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
		explicit = path != ""
	}
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		// SOCIALNOTES_SECURITY_JWT_SECRET -> security.jwt_secret
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		for _, section := range []string{"server", "database", "security", "users", "cors", "log"} {
			if strings.HasPrefix(s, section+"_") {
				return section + "." + strings.TrimPrefix(s, section+"_")
			}
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// IsReservedUsername reports whether the username may not be registered.
func (c *Config) IsReservedUsername(username string) bool {
	for _, name := range c.Users.ReservedUsernames {
		if username == name {
			return true
		}
	}
	for _, name := range c.Users.ElevatedUsers {
		if username == name {
			return true
		}
	}
	return false
}
