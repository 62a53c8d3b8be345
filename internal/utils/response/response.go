// Package response provides helpers for writing consistent JSON HTTP
// responses. Every handler answers with JSON; errors always share one
// envelope so API consumers can parse them without guessing.
package response

import (
	"encoding/json"
	"net/http"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the envelope for errors and bare acknowledgements.
//
// Successful reads and writes return the student (or list) itself.
// Everything else looks like:
//
//	{ "status": "error", "error": "student not found: id 999" }
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Status words. Constants so a typo fails to compile.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusDeleted = "deleted"
	StatusCleared = "cleared"
)

// WriteJSON sets the content type, writes status, then encodes data.
// Headers are frozen once WriteHeader runs, so the order matters.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps err into the error envelope. The HTTP status code,
// chosen by the caller, carries the failure kind.
//
//	response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// Status wraps a bare status word, e.g. {"status": "deleted"}.
func Status(status string) Response {
	return Response{Status: status}
}
