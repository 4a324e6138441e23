package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	domainanalytics "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/usecase/analytics"
)

type stubCatalog struct {
	pingCounts  []analytics.PingCountView
	pingErr     error
	gotStart    string
	gotEnd      string
	gotReportID string
	pingDBErr   error
}

func (s *stubCatalog) ListLocationActivities(context.Context) (analytics.LocationActivitiesView, error) {
	return analytics.LocationActivitiesView{}, nil
}

func (s *stubCatalog) TransponderPingsByDateRange(context.Context, string, string) (analytics.PingListView, error) {
	return analytics.PingListView{}, nil
}

func (s *stubCatalog) HarborReportsAll(context.Context) (analytics.HarborReportListView, error) {
	return analytics.HarborReportListView{}, nil
}

func (s *stubCatalog) CargoVesselDeliveries(context.Context) ([]analytics.CargoDeliveryView, error) {
	return nil, nil
}

func (s *stubCatalog) PossibleIllegalFishing(_ context.Context, reportID string) ([]analytics.FishingView, error) {
	s.gotReportID = reportID
	if strings.TrimSpace(reportID) == "" {
		return nil, errs.Validationf("%s", domainanalytics.MsgReportIDRequired)
	}
	return nil, nil
}

func (s *stubCatalog) PingCountByDateRangeAndType(_ context.Context, start string, end string) ([]analytics.PingCountView, error) {
	s.gotStart, s.gotEnd = start, end
	return s.pingCounts, s.pingErr
}

func (s *stubCatalog) HarborReportCountByDateRange(context.Context, string, string) ([]analytics.HarborReportCountView, error) {
	return nil, nil
}

func (s *stubCatalog) TrendByWeek(context.Context) ([]analytics.WeeklyTrendView, error) {
	return nil, nil
}

func (s *stubCatalog) TrendByMonth(context.Context) ([]analytics.MonthlyTrendView, error) {
	return nil, nil
}

func (s *stubCatalog) CombinedCargoFishJoin(context.Context) ([]analytics.CombinedView, error) {
	return nil, errs.DataQualityf("qty_tons %q is not numeric", "lots")
}

func (s *stubCatalog) Ping(context.Context) error {
	return s.pingDBErr
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPingCountRoutePassesParamsAndEncodesFields(t *testing.T) {
	sum := 70.5
	location := "Ghoti Preserve"
	catalog := &stubCatalog{pingCounts: []analytics.PingCountView{
		{VesselType: "Entity.Vessel.FishingVessel", VesselName: "Ophelia", LocationName: &location, Count: 2, DwellSum: &sum},
	}}
	router := NewRouter(catalog, Options{})

	rec := serve(t, router, "/transponder-pings/?start_date=2035-09-01&end_date=2035-09-30")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if catalog.gotStart != "2035-09-01" || catalog.gotEnd != "2035-09-30" {
		t.Fatalf("params = %q, %q", catalog.gotStart, catalog.gotEnd)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id header")
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body[0]["dwellSum"] != 70.5 || body[0]["vessel_name"] != "Ophelia" || body[0]["count"] != float64(2) {
		t.Fatalf("body = %v", body)
	}
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	router := NewRouter(&stubCatalog{}, Options{})

	for _, path := range []string{"/cargo-vessel/", "/trend-data/", "/trend-line", "/harbor-reports/?start_date=2035-09-01&end_date=2035-09-02", "/fishing/?report_id=r1"} {
		rec := serve(t, router, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Fatalf("%s body = %s, want []", path, got)
		}
	}

	rec := serve(t, router, "/")
	if got := rec.Body.String(); got != `{"getAllLocationActivities":[],"getAllLocationActivitiesByLocation":[]}` {
		t.Fatalf("/ body = %s", got)
	}

	rec = serve(t, router, "/harbor-reports/all/")
	if got := rec.Body.String(); got != `{"count":0,"results":[]}` {
		t.Fatalf("/harbor-reports/all/ body = %s", got)
	}
}

func TestValidationErrorsReturn400WithMessage(t *testing.T) {
	catalog := &stubCatalog{pingErr: errs.Validationf("%s", domainanalytics.MsgInvalidDate)}
	router := NewRouter(catalog, Options{})

	rec := serve(t, router, "/transponder-pings/?start_date=bad&end_date=2035-09-30")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := rec.Body.String(); got != `{"error":"Invalid date format. Use YYYY-MM-DD."}` {
		t.Fatalf("body = %s", got)
	}

	rec = serve(t, router, "/fishing/")
	if rec.Code != http.StatusBadRequest || rec.Body.String() != `{"error":"Missing report_id parameter"}` {
		t.Fatalf("fishing without report: %d %s", rec.Code, rec.Body.String())
	}
}

func TestInternalErrorsAreHidden(t *testing.T) {
	catalog := &stubCatalog{pingErr: errs.Wrap(errors.New("pq: relation does not exist"), "query pings")}
	router := NewRouter(catalog, Options{})

	rec := serve(t, router, "/transponder-pings/?start_date=2035-09-01&end_date=2035-09-30")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "relation") {
		t.Fatalf("body leaks internal detail: %s", rec.Body.String())
	}

	rec = serve(t, router, "/combined/")
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "lots") {
		t.Fatalf("combined: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	catalog := &stubCatalog{}
	router := NewRouter(catalog, Options{})

	if rec := serve(t, router, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}

	catalog.pingDBErr = errors.New("connection refused")
	if rec := serve(t, router, "/healthz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("healthz status = %d, want 503", rec.Code)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := NewRouter(&stubCatalog{}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/trend-line/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", got)
	}
}

func TestRateLimitRejectsBurst(t *testing.T) {
	router := NewRouter(&stubCatalog{}, Options{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	for i := 0; i < 2; i++ {
		if rec := serve(t, router, "/trend-line/"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	if rec := serve(t, router, "/trend-line/"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	if rec := serve(t, router, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz must not be rate limited, got %d", rec.Code)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := serve(t, NewRouter(&stubCatalog{}, Options{}), "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
