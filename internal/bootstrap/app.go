package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"vesselwatch/internal/bootstrap/config"
	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
)

type App struct {
	Config config.Config
	DB     *gorm.DB
}

// InitSchema creates every table for local development. Production tables are
// owned by the ingestion process.
func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "start schema migration", slog.String("database_driver", a.Config.Database.Driver))

	if err := a.DB.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	logging.Info(logCtx, "schema migration completed")
	return nil
}
