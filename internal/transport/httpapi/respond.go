package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
)

const internalErrorMessage = "internal server error"

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error(r.Context(), "encode response failed", slog.Any("err", errs.Loggable(err)))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + internalErrorMessage + `"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeList encodes a nil slice as [] rather than null.
func writeList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, r, http.StatusOK, items)
}

// writeError returns the message of validation errors and hides everything
// else behind a generic 500; the query layer has already logged the details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errs.KindOf(err) == errs.KindValidation {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: errs.PublicMessage(err)})
		return
	}
	logging.Warn(r.Context(), "request failed",
		slog.String("kind", errs.KindOf(err).String()),
		slog.String("path", r.URL.Path),
	)
	writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
}
