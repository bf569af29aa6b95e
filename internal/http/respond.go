package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Al-Ghoul/KarasChan/internal/pagination"
)

// Envelope is the shape of every response body.
type Envelope struct {
	Status     string            `json:"status"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Data       any               `json:"data,omitempty"`
	Meta       *pagination.Meta  `json:"meta,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{
		Status:     "success",
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func writePage(w http.ResponseWriter, message string, data any, meta pagination.Meta) {
	writeJSON(w, http.StatusOK, Envelope{
		Status:     "success",
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Meta:       &meta,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{
		Status:     "error",
		StatusCode: status,
		Message:    message,
	})
}

func writeValidationErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Status:     "error",
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid input",
		Errors:     fields,
	})
}

// writeStorageError hides the underlying failure; store internals are
// never surfaced to callers.
func writeStorageError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "Internal server error, please try again later")
}
