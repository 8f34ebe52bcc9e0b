package api

import "net/http"

const serviceName = "YouTube Transcript API"

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health is the liveness endpoint. The service holds no connections or
// state, so being up is being healthy.
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: serviceName})
}
