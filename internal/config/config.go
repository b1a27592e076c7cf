// Package config wraps Viper behind a small read-only API and defines the
// settings the oscars server understands.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OSCARS_SERVER_PORT.
const EnvPrefix = "OSCARS"

// Source drivers.
const (
	DriverEmbedded = "embedded"
	DriverSQLite   = "sqlite"
)

// Config is a read-only view over a Viper instance. A nil Viper behaves
// like an empty configuration.
type Config struct {
	v *viper.Viper
}

// New wraps v.
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

// Sub returns the subtree at key. A missing subtree yields an empty Config
// rather than nil.
func (c *Config) Sub(key string) *Config {
	return New(c.v.Sub(key))
}

// Unmarshal decodes the whole configuration into target.
func (c *Config) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

// Settings is the typed form of the server configuration.
type Settings struct {
	Server ServerSettings `mapstructure:"server"`
	Source SourceSettings `mapstructure:"source"`
	Log    LogSettings    `mapstructure:"log"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Host         string            `mapstructure:"host"`
	Port         string            `mapstructure:"port"`
	ReadTimeout  time.Duration     `mapstructure:"read_timeout"`
	WriteTimeout time.Duration     `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration     `mapstructure:"idle_timeout"`
	Compress     bool              `mapstructure:"compress"`
	RateLimit    RateLimitSettings `mapstructure:"rate_limit"`
}

// RateLimitSettings configures the global request limiter. Zero RPS disables it.
type RateLimitSettings struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// SourceSettings selects where film collections are read from.
type SourceSettings struct {
	Driver string         `mapstructure:"driver"`
	SQLite SQLiteSettings `mapstructure:"sqlite"`
}

// SQLiteSettings locates the SQLite film store.
type SQLiteSettings struct {
	Path string `mapstructure:"path"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level string `mapstructure:"level"`
}

// Addr returns host:port.
func (s ServerSettings) Addr() string {
	return s.Host + ":" + s.Port
}

// SetDefaults installs the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.compress", true)
	v.SetDefault("server.rate_limit.rps", 0)
	v.SetDefault("server.rate_limit.burst", 20)
	v.SetDefault("source.driver", DriverEmbedded)
	v.SetDefault("source.sqlite.path", "oscars.db")
	v.SetDefault("log.level", "info")
}

// Load builds the configuration from defaults, the optional file at path
// (format taken from its extension) and OSCARS_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	return New(v), nil
}

// Settings decodes and validates the typed settings.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports settings that cannot be served.
func (s Settings) Validate() error {
	var errs []error
	switch s.Source.Driver {
	case DriverEmbedded:
	case DriverSQLite:
		if s.Source.SQLite.Path == "" {
			errs = append(errs, errors.New("source.sqlite.path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("source.driver %q is not one of %s, %s", s.Source.Driver, DriverEmbedded, DriverSQLite))
	}
	if s.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if s.Server.RateLimit.RPS < 0 {
		errs = append(errs, errors.New("server.rate_limit.rps must not be negative"))
	}
	return errors.Join(errs...)
}
