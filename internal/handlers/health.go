package handlers

import (
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/storefront"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	session             *storefront.Session
	assistantConfigured bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(session *storefront.Session, assistantConfigured bool) *HealthHandler {
	return &HealthHandler{session: session, assistantConfigured: assistantConfigured}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	mode := "unconfigured"
	if h.assistantConfigured {
		mode = "configured"
	}

	writeJSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:        "healthy",
		CatalogItems:  h.session.CatalogSize(),
		AssistantMode: mode,
	})
}
