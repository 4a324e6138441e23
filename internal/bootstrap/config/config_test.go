package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  driver: sqlite
  dsn: /tmp/vw-test.sqlite
server:
  addr: ":9100"
  cors_allowed_origins: ["https://dash.example"]
cache:
  driver: database
query:
  timeout: 5s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.DSN != "/tmp/vw-test.sqlite" {
		t.Fatalf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("server.addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "https://dash.example" {
		t.Fatalf("server.cors_allowed_origins = %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Cache.Driver != CacheDriverDatabase {
		t.Fatalf("cache.driver = %q", cfg.Cache.Driver)
	}
	if cfg.Query.Timeout != 5*time.Second {
		t.Fatalf("query.timeout = %v", cfg.Query.Timeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("server.shutdown_timeout default = %v", cfg.Server.ShutdownTimeout)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("VW_DATABASE_DSN", "file:env.sqlite")
	t.Setenv("VW_CACHE_DRIVER", "memory")

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.DSN != "file:env.sqlite" {
		t.Fatalf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.App.Name != "vesselwatch" {
		t.Fatalf("app.name = %q", cfg.App.Name)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("Load() expected error for missing explicit config file")
	}
}

func TestValidateRejectsNATSWithoutURL(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "x.sqlite"},
		Cache:    CacheConfig{Driver: CacheDriverNATS},
		Query:    QueryConfig{Timeout: time.Second},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() expected error")
	}

	cfg.Cache.NATSURL = "nats://127.0.0.1:4222"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cfg.Cache.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() expected error for unknown driver")
	}
}

func TestValidateRejectsNegativePurgeInterval(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "x.sqlite"},
		Cache:    CacheConfig{Driver: CacheDriverDatabase, PurgeInterval: -time.Second},
		Query:    QueryConfig{Timeout: time.Second},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() expected error")
	}

	cfg.Cache.PurgeInterval = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
