// Package httputil contains shared request/response helpers and the
// single error-to-response translation step every handler goes through.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pviana/daily-diet-server/internal/model"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ReadJSON decodes the request body into v.
func ReadJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

// HandleError maps a domain failure to exactly one status code and JSON
// error body. Every handler and middleware reports failures through this
// function and nowhere else.
func HandleError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError

	switch {
	case errors.As(err, &vErr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: vErr.Error()})
	case errors.Is(err, model.ErrUnauthenticated):
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing session token"})
	case errors.Is(err, model.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, model.ErrDuplicateEmail):
		WriteJSON(w, http.StatusConflict, ErrorResponse{Error: "email already registered"})
	default:
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
