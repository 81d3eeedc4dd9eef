package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorPayload is the body of every error response. Detail is a message or,
// for validation failures, the list of field errors.
type ErrorPayload struct {
	Detail any `json:"detail"`
}

// JSONResponse sends v as JSON with the given status
func JSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse sends {"detail": detail}
func ErrorResponse(w http.ResponseWriter, status int, detail any) {
	JSONResponse(w, status, ErrorPayload{Detail: detail})
}
