package handler

import (
	"net/http"

	"github.com/quantdesk/quantdesk/internal/api/response"
	"github.com/quantdesk/quantdesk/internal/strategy"
)

// StrategiesHandler serves the strategy catalog.
type StrategiesHandler struct {
	catalog *strategy.Catalog
}

// NewStrategiesHandler creates a strategies handler.
func NewStrategiesHandler(catalog *strategy.Catalog) *StrategiesHandler {
	return &StrategiesHandler{catalog: catalog}
}

// List returns all registered strategies with their parameter schemas.
func (h *StrategiesHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.catalog.Definitions())
}
