package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. POSTBOARD_AUTH_SECRET.
const EnvPrefix = "POSTBOARD"

// Defaults applied before the config file and environment are read.
const (
	defaultPort         = "8080"
	defaultDBPath       = "postboard.db"
	defaultTokenTTL     = 10 * time.Hour
	defaultAuthHeader   = "x-auth-token"
	defaultBcryptCost   = 10
	defaultLogLevel     = "info"
	defaultFeedInterval = time.Second
)

// placeholderSecret is the value older sample configs shipped with.
const placeholderSecret = "change-me"

var ErrMissingSecret = errors.New("auth.secret must be set")

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Log    LogConfig
	Feed   FeedConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Path string
}

// AuthConfig controls token signing and transport.
type AuthConfig struct {
	Secret     string
	TokenTTL   time.Duration
	Header     string
	Scheme     string // empty means the header carries the raw token
	BcryptCost int
}

type LogConfig struct {
	Level string
}

type FeedConfig struct {
	Interval time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("auth.header", defaultAuthHeader)
	v.SetDefault("auth.scheme", "")
	v.SetDefault("auth.bcrypt_cost", defaultBcryptCost)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("feed.interval", defaultFeedInterval)
}

// Load reads configuration from file (if path is empty, configs/config.yml is
// searched) and environment variables. A missing config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{Port: v.GetString("server.port")},
		DB:     DBConfig{Path: v.GetString("db.path")},
		Auth: AuthConfig{
			Secret:     v.GetString("auth.secret"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			Header:     v.GetString("auth.header"),
			Scheme:     v.GetString("auth.scheme"),
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
		},
		Log:  LogConfig{Level: v.GetString("log.level")},
		Feed: FeedConfig{Interval: v.GetDuration("feed.interval")},
	}
}

// Validate checks settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	if secret := strings.TrimSpace(c.Auth.Secret); secret == "" || secret == placeholderSecret {
		return ErrMissingSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.Header == "" {
		return errors.New("auth.header must not be empty")
	}
	if c.DB.Path == "" {
		return errors.New("db.path must not be empty")
	}
	return nil
}
