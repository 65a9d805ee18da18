package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. CONTACTS_SERVER_PORT.
const EnvPrefix = "CONTACTS"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind every nested key explicitly; AutomaticEnv alone does not see keys
	// that have neither a default nor a config file entry during Unmarshal.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url", "database.max_open_conns", "database.max_idle_conns",
		"database.conn_max_lifetime_minutes",
		"storage.driver",
		"cache.enabled", "cache.redis_addr", "cache.redis_password", "cache.redis_db",
		"cache.ttl_seconds",
		"cors.allowed_origins",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The conventional DATABASE_URL wins over everything else.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ErrInvalidConfig is returned when a loaded configuration is incomplete or inconsistent.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks cfg against its struct tags and the rules that span sections.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.Storage.Driver == "postgres" && cfg.Database.URL == "" {
		return fmt.Errorf("%w: database.url is required for the postgres storage driver", ErrInvalidConfig)
	}
	if cfg.Cache.Enabled && cfg.Cache.RedisAddr == "" {
		return fmt.Errorf("%w: cache.redis_addr is required when the cache is enabled", ErrInvalidConfig)
	}
	if cfg.Cache.Enabled && cfg.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("%w: cache.ttl_seconds must be greater than 0 when the cache is enabled", ErrInvalidConfig)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}
