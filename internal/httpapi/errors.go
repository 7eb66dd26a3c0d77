package httpapi

import (
	"encoding/json"
	"net/http"

	"sohd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// writeValidationError writes a 422 listing every rejected field.
func writeValidationError(w http.ResponseWriter, detail []types.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, types.ErrorResponse{
		Error:  "validation failed",
		Code:   http.StatusUnprocessableEntity,
		Detail: detail,
	})
}
