// Package config loads RenewHub configuration from an optional YAML file and
// RENEWHUB_* environment variables, layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// RENEWHUB_BACKEND_URL overrides backend.url.
const EnvPrefix = "RENEWHUB"

// Data source kinds.
const (
	DataSourceSample = "sample"
	DataSourceHTTP   = "http"
)

// Config is a nil-safe read-only view over a viper instance.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil v behaves like an empty configuration.
func New(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}
	return &Config{v: v}
}

func (c *Config) GetString(key string) string          { return c.v.GetString(key) }
func (c *Config) GetInt(key string) int                { return c.v.GetInt(key) }
func (c *Config) GetBool(key string) bool              { return c.v.GetBool(key) }
func (c *Config) GetFloat64(key string) float64        { return c.v.GetFloat64(key) }
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }
func (c *Config) IsSet(key string) bool                { return c.v.IsSet(key) }

// Sub returns the subtree at key, or an empty Config when it is absent.
func (c *Config) Sub(key string) *Config {
	return New(c.v.Sub(key))
}

// Unmarshal decodes the whole configuration into target using mapstructure tags.
func (c *Config) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

// Viper returns the wrapped instance for APIs that take *viper.Viper directly.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

// Settings is the typed form of the configuration.
type Settings struct {
	Server     ServerSettings  `mapstructure:"server"`
	Backend    BackendSettings `mapstructure:"backend"`
	DataSource string          `mapstructure:"datasource"`
	Log        LogSettings     `mapstructure:"log"`
}

type ServerSettings struct {
	Host      string  `mapstructure:"host"`
	Port      int     `mapstructure:"port"`
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type BackendSettings struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogSettings struct {
	// File receives TUI logs. Empty disables logging in the TUI.
	File string `mapstructure:"file"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("backend.url", "http://backend:5000/api")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("datasource", DataSourceSample)
	v.SetDefault("log.file", "")
	for _, name := range []string{"catalog", "forecast", "recommend"} {
		v.SetDefault("modules."+name+".enabled", true)
	}
}

// Load reads the config file at path (optional) and the environment. An
// empty path searches ./renewhub.yaml and $HOME/.renewhub/renewhub.yaml, and a
// missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("renewhub")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.renewhub")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := New(v)
	if _, err := cfg.Settings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Settings decodes and validates the typed settings.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	switch s.DataSource {
	case DataSourceSample, DataSourceHTTP:
	default:
		return Settings{}, fmt.Errorf("datasource must be %q or %q, got %q",
			DataSourceSample, DataSourceHTTP, s.DataSource)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return Settings{}, fmt.Errorf("server.port out of range: %d", s.Server.Port)
	}
	if s.Backend.URL == "" {
		return Settings{}, errors.New("backend.url must not be empty")
	}
	return s, nil
}
