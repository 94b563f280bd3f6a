package handler

import (
	"net/http"

	"github.com/quantdesk/quantdesk/internal/api/response"
)

// HealthHandler serves liveness checks.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Check reports service health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}
