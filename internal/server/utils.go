package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tvenergy/internal/charts"
	"tvenergy/internal/fetchers"
	"tvenergy/internal/storage"
)

// errBadRequest marks malformed query values.
var errBadRequest = errors.New("bad request")

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, charts.ErrUnknownChart), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, charts.ErrInvalidWidth), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, fetchers.ErrEmptyDataset):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fetchers.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError writes err as a JSON error body with its mapped status
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]interface{}{
		"error":  err.Error(),
		"status": "error",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// floatParam parses the named query value. A missing value yields def.
func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", errBadRequest, name, raw)
	}
	return v, nil
}

// width reads the container width, defaulting to DEFAULT_WIDTH
func (s *Server) width(r *http.Request) (float64, error) {
	w, err := floatParam(r, "width", float64(s.Config.DefaultWidth))
	if err != nil {
		return 0, err
	}
	if err := charts.ValidateWidth(w); err != nil {
		return 0, err
	}
	return w, nil
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
