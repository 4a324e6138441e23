package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"vesselwatch/internal/bootstrap/config"
	"vesselwatch/internal/bootstrap/database"
	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
	cacheinfra "vesselwatch/internal/infrastructure/cache"
	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
	gormrepo "vesselwatch/internal/infrastructure/persistence/gormdb/repository"
	gormuow "vesselwatch/internal/infrastructure/persistence/gormdb/uow"
	"vesselwatch/internal/ports"
	"vesselwatch/internal/transport/httpapi"
	"vesselwatch/internal/usecase/analytics"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			gormrepo.NewAnalyticsRepository,
			fx.As(new(ports.AnalyticsReadRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			gormuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(provideCache),
	fx.Provide(provideService),
	fx.Provide(provideRouter),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			logging.Info(logCtx, "database connection closed")
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideCache(lc fx.Lifecycle, ctx context.Context, cfg config.Config, db *gorm.DB) (ports.Cache, error) {
	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "bootstrap.fx"),
		slog.String("cache_driver", cfg.Cache.Driver),
	)

	switch strings.ToLower(cfg.Cache.Driver) {
	case config.CacheDriverMemory:
		logging.Info(logCtx, "result cache ready")
		return cacheinfra.NewMemoryCache(), nil
	case config.CacheDriverDatabase:
		// The cache table is the one table this service owns.
		if err := db.WithContext(ctx).AutoMigrate(&model.CacheEntry{}); err != nil {
			return nil, errs.Wrap(err, "migrate cache table")
		}
		dbCache := cacheinfra.NewDBCache(db)
		if interval := cfg.Cache.PurgeInterval; interval > 0 {
			purgeCtx, cancel := context.WithCancel(context.WithoutCancel(logCtx))
			done := make(chan struct{})
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						defer close(done)
						dbCache.PurgeEvery(purgeCtx, interval)
					}()
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()
					select {
					case <-done:
						return nil
					case <-stopCtx.Done():
						return stopCtx.Err()
					}
				},
			})
		}
		logging.Info(logCtx, "result cache ready", slog.Duration("purge_interval", cfg.Cache.PurgeInterval))
		return dbCache, nil
	case config.CacheDriverNATS:
		nc, err := nats.Connect(cfg.Cache.NATSURL, nats.Name(cfg.App.Name))
		if err != nil {
			return nil, errs.Wrapf(err, "connect nats %q", cfg.Cache.NATSURL)
		}
		natsCache, err := cacheinfra.NewNATSCache(ctx, nc, cfg.Cache.NATSBucket, analytics.PingCountCacheTTL)
		if err != nil {
			nc.Close()
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				logging.Info(logCtx, "nats connection draining")
				return nc.Drain()
			},
		})
		logging.Info(logCtx, "result cache ready", slog.String("bucket", cfg.Cache.NATSBucket))
		return natsCache, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
	}
}

func provideService(cfg config.Config, repo ports.AnalyticsReadRepository, uow ports.UnitOfWork, cache ports.Cache) *analytics.Service {
	return analytics.NewService(repo, uow, cache, cfg.Query.Timeout)
}

func provideRouter(cfg config.Config, svc *analytics.Service) http.Handler {
	return httpapi.NewRouter(svc, httpapi.Options{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimitRequests:  cfg.Server.RateLimitRequests,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	})
}
