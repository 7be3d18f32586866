package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ushki/dndsheet/internal/service"
)

// errorBody is the JSON envelope for all error responses.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service error kinds to HTTP status codes. Unexpected
// errors come back 500 with a generic body; internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// writeUnauthorized writes a 401 when err is an Unauthorized service error
// and reports whether it did. Login and refresh failures use this; ownership
// denials on authenticated requests go through writeError as 403 instead.
func writeUnauthorized(w http.ResponseWriter, err error) bool {
	if errors.Is(err, service.ErrUnauthorized) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
		return true
	}
	return false
}

// decodeJSON reads the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
