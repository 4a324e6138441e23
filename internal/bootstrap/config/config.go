package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Query    QueryConfig    `mapstructure:"query"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Addr               string        `mapstructure:"addr"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// CacheConfig selects the result cache backend: memory, database or nats.
type CacheConfig struct {
	Driver     string `mapstructure:"driver"`
	NATSURL    string `mapstructure:"nats_url"`
	NATSBucket string `mapstructure:"nats_bucket"`
	// PurgeInterval is how often the database driver deletes expired rows; zero disables it.
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type QueryConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

const (
	CacheDriverMemory   = "memory"
	CacheDriverDatabase = "database"
	CacheDriverNATS     = "nats"
)

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (configFile == DefaultConfigFile && errors.Is(err, fs.ErrNotExist)) {
			// Defaults and env are enough to run locally.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("cache_driver", cfg.Cache.Driver),
	)

	return cfg, nil
}

// DefaultConfigFile is the --config default; a missing file at this path is not an error.
const DefaultConfigFile = "configs/config.yaml"

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn is required")
	}
	switch strings.ToLower(c.Cache.Driver) {
	case CacheDriverMemory, CacheDriverDatabase:
	case CacheDriverNATS:
		if strings.TrimSpace(c.Cache.NATSURL) == "" {
			return errors.New("cache.nats_url is required for the nats cache driver")
		}
	default:
		return fmt.Errorf("unsupported cache driver %q", c.Cache.Driver)
	}
	if c.Cache.PurgeInterval < 0 {
		return errors.New("cache.purge_interval must not be negative")
	}
	if c.Query.Timeout <= 0 {
		return errors.New("query.timeout must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vesselwatch")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/vesselwatch.sqlite")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit_requests", 600)
	v.SetDefault("server.rate_limit_window", time.Minute)
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.nats_url", "")
	v.SetDefault("cache.nats_bucket", "vesselwatch_query_cache")
	v.SetDefault("cache.purge_interval", 10*time.Minute)
	v.SetDefault("query.timeout", 30*time.Second)
}
