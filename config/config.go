// Package config loads the service configuration from config.yaml with
// environment variable overrides, through koanf.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath       = "."
	defaultBcryptCost = 12
	defaultHTTPPort   = 8080
)

// StoreDriver selects the Resource Store backend.
type StoreDriver string

const (
	// StoreDriverMemory keeps all state in process memory. The default,
	// used for development and tests.
	StoreDriverMemory StoreDriver = "memory"
	// StoreDriverPostgres persists state in PostgreSQL through GORM.
	StoreDriverPostgres StoreDriver = "postgres"
)

// IsValid checks if the StoreDriver is a known value.
func (d StoreDriver) IsValid() bool {
	switch d {
	case StoreDriverMemory, StoreDriverPostgres:
		return true
	default:
		return false
	}
}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Store struct {
		Driver   StoreDriver     `json:"driver" yaml:"driver"`
		Postgres *PostgresConfig `json:"postgres" yaml:"postgres"`
	} `json:"store" yaml:"store"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

// PostgresConfig holds the connection settings for the PostgreSQL backend.
type PostgresConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`

	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf and overlays environment
// variables. A variable like HTTP_PORT overrides the `http.port` key.
func LoadWithEnv[T any](fileName string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	loaded := false
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, fileName+".yaml")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := koanfInstance.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", candidate)
		}
		loaded = true

		break
	}
	if !loaded {
		return nil, errors.Errorf("config file %s.yaml not found in %v", fileName, searchPaths)
	}

	// Environment variables override file values: HTTP_PORT -> http.port.
	envProvider := env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
		},
	})
	if err := koanfInstance.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "load environment overrides")
	}

	unmarshalConf := koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           cfg,
			WeaklyTypedInput: true,
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}
	if err := koanfInstance.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	return cfg, nil
}

// New loads the service configuration and applies defaults.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreDriverMemory
	}
	if !cfg.Store.Driver.IsValid() {
		return nil, errors.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}

	return cfg, nil
}
