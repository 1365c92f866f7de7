package mcp

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Digests   int    `json:"digests"`
	Timestamp string `json:"timestamp"`
}

// DigestCounter reports how many digests the store holds. The digest store
// implements it via Len().
type DigestCounter interface {
	Len() int
}

// NewHealthHandler creates the /health endpoint handler. The store is
// in-process memory, so the check is always healthy; the digest count is
// reported for operators.
func NewHealthHandler(store DigestCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "healthy",
			Digests:   store.Len(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}
