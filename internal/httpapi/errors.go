package httpapi

import (
	"errors"
	"net/http"

	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }
func unauthorized(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusUnauthorized, msg, "unauthorized")
}
func conflict(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusConflict, msg, "conflict")
}

// writeDomainError maps slice and store errors onto the payload. Field
// validation failures carry the offending field name.
func writeDomainError(w http.ResponseWriter, err error) {
	var fe *tracker.FieldError
	switch {
	case errors.As(err, &fe):
		toJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: fe.Msg, Code: "validation_error", Field: fe.Field})
	case errors.Is(err, errs.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, err.Error(), "unauthorized")
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrConflict):
		conflict(w, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "internal")
	}
}
