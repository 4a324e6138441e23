package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"vesselwatch/internal/infrastructure/cache"
	"vesselwatch/internal/infrastructure/persistence/gormdb/dbtest"
	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
	"vesselwatch/internal/infrastructure/persistence/gormdb/repository"
	"vesselwatch/internal/infrastructure/persistence/gormdb/uow"
	"vesselwatch/internal/usecase/analytics"
)

func TestRouterServesRealCatalog(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.Seed(t, db).
		Vessel("cargo1", "Cargo One", model.CargoVesselType).
		Location("Haacklee", "Haacklee").
		Activity("Haacklee", "Harbor").
		Ping("p1", "cargo1", "Haacklee", "100", "2035-09-01T08:00:00").
		Ping("p2", "cargo1", "Haacklee", "25", "2035-09-02T08:00:00").
		HarborReport("h1", "cargo1", "Haacklee", "2035-09-01", "2035-09-01")

	svc := analytics.NewService(
		repository.NewAnalyticsRepository(db),
		uow.NewUnitOfWork(db),
		cache.NewMemoryCache(),
		5*time.Second,
	)
	router := NewRouter(svc, Options{})

	rec := serve(t, router, "/transponder-pings/?start_date=2035-9-1&end_date=2035-9-30")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var counts []analytics.PingCountView
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(counts) != 1 || counts[0].Count != 2 || *counts[0].DwellSum != 125 {
		t.Fatalf("counts = %+v", counts)
	}

	rec = serve(t, router, "/transponder-pings/raw/?start_date=2035-09-02&end_date=2035-09-02")
	var raw analytics.PingListView
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if raw.Count != 1 || raw.Results[0].VesselID != "cargo1" || *raw.Results[0].Dwell != "25" {
		t.Fatalf("raw = %+v", raw)
	}

	rec = serve(t, router, "/harbor-reports/?start_date=2035-09-01")
	if rec.Code != http.StatusBadRequest || rec.Body.String() != `{"error":"start_date and end_date parameters are required"}` {
		t.Fatalf("missing end_date: %d %s", rec.Code, rec.Body.String())
	}

	if rec := serve(t, router, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
}
