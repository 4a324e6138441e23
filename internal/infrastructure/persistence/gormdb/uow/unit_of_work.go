package uow

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"vesselwatch/internal/ports"
)

// UnitOfWork implements ports.UnitOfWork with gorm.
type UnitOfWork struct {
	db *gorm.DB
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) WithReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ports.WithTxContext(ctx, tx))
	}, readOnlyOptions(u.db)...)
}

// SQLite transactions are already snapshot-consistent for readers; only
// PostgreSQL is asked for an explicit read-only transaction.
func readOnlyOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return []*sql.TxOptions{{ReadOnly: true}}
	}
	return nil
}
