package delivery

import (
	"encoding/json"
	"net/http"
	"time"
)

const serviceName = "telecom-assistente-api"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": serviceName,
		"ts":      time.Now().UTC().Format(time.RFC3339),
	})
}
