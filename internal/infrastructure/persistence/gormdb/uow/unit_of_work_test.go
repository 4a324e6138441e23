package uow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"vesselwatch/internal/ports"
)

func TestWithReadTxExposesTxInContext(t *testing.T) {
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "uow.sqlite")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	uow := NewUnitOfWork(db)
	var seen bool
	if err := uow.WithReadTx(context.Background(), func(ctx context.Context) error {
		tx, ok := ports.TxFromContext(ctx).(*gorm.DB)
		seen = ok && tx != nil
		return nil
	}); err != nil {
		t.Fatalf("WithReadTx() error = %v", err)
	}
	if !seen {
		t.Fatalf("tx not found in context")
	}

	wantErr := errors.New("query failed")
	if err := uow.WithReadTx(context.Background(), func(context.Context) error {
		return wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("WithReadTx() error = %v, want %v", err, wantErr)
	}
}
