// Package handlers contains the JSON API handlers for the Vitrina server.
// Handlers are grouped by concern (auth, admin, catalog) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error response with a human-readable message.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondCode writes a JSON error response carrying a machine-readable
// code alongside the message, for cases the SPA branches on
// (no_business, invalid_credentials, email_taken).
func respondCode(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, map[string]string{"error": msg, "code": code})
}
