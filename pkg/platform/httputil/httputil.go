// Package httputil centralizes JSON response writing so every handler emits
// the same envelope and internal error detail never reaches callers.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "kyc-gateway/pkg/domain-errors"
)

// WriteJSON encodes v with the given status. Encoding failures at this point
// cannot be reported to the client; they surface through server logs only.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors omit the description so nothing leaks by accident.
func WriteError(w http.ResponseWriter, err error) {
	de := dErrors.From(err)
	body := map[string]string{"error": string(de.Code)}
	if de.Code != dErrors.CodeInternal && de.Description != "" {
		body["error_description"] = de.Description
	}
	WriteJSON(w, dErrors.ToHTTPStatus(de.Code), body)
}
