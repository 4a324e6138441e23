package httpapi

import (
	"log/slog"
	"net/http"

	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/usecase/analytics"
)

type handler struct {
	catalog Catalog
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Ping(r.Context()); err != nil {
		logging.Error(r.Context(), "health check failed", slog.Any("err", errs.Loggable(err)))
		writeJSON(w, r, http.StatusServiceUnavailable, errorBody{Error: "database unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) locationActivities(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.ListLocationActivities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if view.All == nil {
		view.All = []analytics.LocationActivityView{}
	}
	if view.ByLocation == nil {
		view.ByLocation = []analytics.LocationActivityView{}
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (h *handler) pingCountByType(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	views, err := h.catalog.PingCountByDateRangeAndType(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, r, views)
}

func (h *handler) pingsByDateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view, err := h.catalog.TransponderPingsByDateRange(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if view.Results == nil {
		view.Results = []analytics.PingView{}
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (h *handler) harborReportCounts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	views, err := h.catalog.HarborReportCountByDateRange(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, r, views)
}

func (h *handler) harborReportsAll(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.HarborReportsAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if view.Results == nil {
		view.Results = []analytics.HarborReportView{}
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (h *handler) cargoDeliveries(w http.ResponseWriter, r *http.Request) {
	views, err := h.catalog.CargoVesselDeliveries(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, r, views)
}

func (h *handler) illegalFishing(w http.ResponseWriter, r *http.Request) {
	views, err := h.catalog.PossibleIllegalFishing(r.Context(), r.URL.Query().Get("report_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, r, views)
}

func (h *handler) trendByWeek(w http.ResponseWriter, r *http.Request) {
	views, err := h.catalog.TrendByWeek(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, r, views)
}

func (h *handler) trendByMonth(w http.ResponseWriter, r *http.Request) {
	views, err := h.catalog.TrendByMonth(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, r, views)
}

func (h *handler) combined(w http.ResponseWriter, r *http.Request) {
	views, err := h.catalog.CombinedCargoFishJoin(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, r, views)
}
