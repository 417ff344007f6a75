package httpapi

import (
	"errors"
	"net/http"

	"github.com/tinoosan/workshop/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }
func unprocessable(w http.ResponseWriter, msg, code string) {
	writeErr(w, http.StatusUnprocessableEntity, msg, code)
}

// writeSvcErr maps service/domain sentinels to HTTP statuses; anything
// unrecognized is a 500.
func writeSvcErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalid):
		badRequest(w, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrNoTable):
		unprocessable(w, err.Error(), "no_table")
	case errors.Is(err, errs.ErrUnprocessable):
		unprocessable(w, err.Error(), "unprocessable")
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "")
	}
}
