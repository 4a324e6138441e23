package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/fx"

	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
	"vesselwatch/internal/usecase/analytics"
)

func TestModuleWiresDatabaseCacheAndRouter(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := "database:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "vw.sqlite") + "\ncache:\n  driver: database\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var app *App
	var svc *analytics.Service
	var router http.Handler
	fxApp := fx.New(
		Module,
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(
			fx.Annotate(
				func() string { return configFile },
				fx.ResultTags(`name:"configFile"`),
			),
		),
		fx.Populate(&app, &svc, &router),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		t.Fatalf("start fx app: %v", err)
	}
	t.Cleanup(func() {
		_ = fxApp.Stop(context.Background())
	})

	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}

	views, err := svc.PingCountByDateRangeAndType(ctx, "2035-09-01", "2035-09-30")
	if err != nil {
		t.Fatalf("PingCountByDateRangeAndType() error = %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("views = %+v, want empty", views)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}

func TestModulePurgesExpiredDatabaseCacheEntries(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := "database:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "vw.sqlite") +
		"\ncache:\n  driver: database\n  purge_interval: 20ms\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var app *App
	var svc *analytics.Service
	fxApp := fx.New(
		Module,
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(
			fx.Annotate(
				func() string { return configFile },
				fx.ResultTags(`name:"configFile"`),
			),
		),
		fx.Populate(&app, &svc),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		t.Fatalf("start fx app: %v", err)
	}
	t.Cleanup(func() {
		_ = fxApp.Stop(context.Background())
	})

	expired := model.CacheEntry{
		Key:       "ping_count_by_type_2035-09-01_2035-09-30",
		Value:     "[]",
		ExpiresAt: "2000-01-01T00:00:00.000000000Z",
		UpdatedAt: "1999-12-31T23:00:00.000000000Z",
	}
	if err := app.DB.Create(&expired).Error; err != nil {
		t.Fatalf("insert expired entry: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		var remaining int64
		if err := app.DB.Model(&model.CacheEntry{}).Count(&remaining).Error; err != nil {
			t.Fatalf("count cache entries: %v", err)
		}
		if remaining == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expired cache entry was not purged")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
