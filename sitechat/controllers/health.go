package controllers

import (
	"encoding/json"
	"net/http"
)

type HealthController struct {
	llmConfigured bool
}

func NewHealthController(llmConfigured bool) *HealthController {
	return &HealthController{llmConfigured: llmConfigured}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":        "ok",
		"llmConfigured": h.llmConfigured,
	})
}
