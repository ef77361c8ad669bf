// Package app implements the marketplace API handlers that sit behind the
// authorization gate: account registration and login, the whoami endpoint,
// and the lead browsing and management endpoints.
package app

import (
	"encoding/json"
	"net/http"

	"github.com/leadmarket/leadmarket/pkg/logger"
)

// apiError is the uniform error payload for all API endpoints.
type apiError struct {
	Error string `json:"error"`
}

func writeJSON(rw http.ResponseWriter, status int, payload interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(payload); err != nil {
		logger.Errorf("Error encoding response payload: %v", err)
	}
}

func writeError(rw http.ResponseWriter, status int, message string) {
	writeJSON(rw, status, apiError{Error: message})
}

func decodeJSON(req *http.Request, into interface{}) error {
	defer req.Body.Close()

	return json.NewDecoder(req.Body).Decode(into)
}
