package controllers

import (
	"encoding/json"
	"net/http"
	"time"
)

// Health is the liveness probe. Unlike the API routes it answers with a
// bare status object, not the success envelope.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
