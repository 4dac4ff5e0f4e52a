package handler

import (
	"encoding/json"
	"net/http"
)

// HealthCheck godoc
// @Summary      Liveness probe
// @Description  Reports whether the API is up
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "vidtube-api",
	})
}
