// Package dbtest opens throwaway SQLite databases with the full schema and
// seeds them row by row for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"vesselwatch/internal/bootstrap/database"
	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
)

// Open returns a migrated database in t's temp dir, closed on cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := database.SQLiteDSN(filepath.Join(t.TempDir(), "vesselwatch.sqlite"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// Seeder inserts rows and fails the test on the first error.
type Seeder struct {
	t  testing.TB
	db *gorm.DB
}

func Seed(t testing.TB, db *gorm.DB) *Seeder {
	return &Seeder{t: t, db: db}
}

// Str returns a pointer to v, for nullable text columns.
func Str(v string) *string {
	return &v
}

func (s *Seeder) create(value any) *Seeder {
	s.t.Helper()
	if err := s.db.Omit(clause.Associations).Create(value).Error; err != nil {
		s.t.Fatalf("seed %T: %v", value, err)
	}
	return s
}

func (s *Seeder) Vessel(id, name, vesselType string) *Seeder {
	s.t.Helper()
	return s.create(&model.Vessel{ID: id, Name: name, Type: vesselType})
}

func (s *Seeder) Location(id, name string) *Seeder {
	s.t.Helper()
	return s.create(&model.Location{ID: id, Name: Str(name)})
}

func (s *Seeder) Activity(locationID, activity string) *Seeder {
	s.t.Helper()
	return s.create(&model.LocationActivity{LocationID: Str(locationID), Activity: Str(activity)})
}

// Ping inserts a transponder ping; dateAdded defaults to the date part of at.
func (s *Seeder) Ping(id, vesselID, locationID, dwell, at string) *Seeder {
	s.t.Helper()
	dateAdded := at
	if len(at) >= 10 {
		dateAdded = at[:10]
	}
	return s.PingRow(model.TransponderPing{
		ID:         id,
		VesselID:   vesselID,
		LocationID: locationID,
		Dwell:      Str(dwell),
		DateAdded:  Str(dateAdded),
		Time:       Str(at),
	})
}

func (s *Seeder) PingRow(row model.TransponderPing) *Seeder {
	s.t.Helper()
	return s.create(&row)
}

func (s *Seeder) HarborReport(id, vesselID, locationID, date, dateAdded string) *Seeder {
	s.t.Helper()
	return s.create(&model.HarborReport{
		ID:         id,
		VesselID:   vesselID,
		LocationID: locationID,
		Date:       Str(date),
		DateAdded:  Str(dateAdded),
	})
}

func (s *Seeder) Transaction(reportID, target, date string) *Seeder {
	s.t.Helper()
	return s.create(&model.Transaction{ReportID: reportID, Target: target, Date: Str(date)})
}

func (s *Seeder) DeliveryReport(id, qtyTons, date string) *Seeder {
	s.t.Helper()
	return s.create(&model.DeliveryReport{ID: id, QtyTons: Str(qtyTons), Date: Str(date)})
}

func (s *Seeder) FishType(id, name string) *Seeder {
	s.t.Helper()
	return s.create(&model.FishType{ID: id, Name: name})
}

func (s *Seeder) FishLocation(locationID, fishID string) *Seeder {
	s.t.Helper()
	return s.create(&model.FishLocation{LocationID: locationID, FishID: fishID})
}
