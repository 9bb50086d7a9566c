package handlers

import (
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/storefront"
	"storefront-api/internal/telemetry"
)

// CartHandler handles cart and drawer requests
type CartHandler struct {
	session   *storefront.Session
	telemetry *telemetry.StorefrontTelemetry
}

// NewCartHandler creates a new cart handler
func NewCartHandler(session *storefront.Session, st *telemetry.StorefrontTelemetry) *CartHandler {
	return &CartHandler{session: session, telemetry: st}
}

// GetCart handles GET /v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.CartView())
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.session.AddToCart(req.ItemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.telemetry.RecordCartMutation(r.Context(), telemetry.CartOperationAdd)
	writeJSONResponse(w, http.StatusOK, view)
}

// UpdateItem handles PATCH /v1/cart/items/{itemId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.session.UpdateQuantity(id, req.Delta)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.telemetry.RecordCartMutation(r.Context(), telemetry.CartOperationUpdate)
	writeJSONResponse(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /v1/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.session.RemoveFromCart(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.telemetry.RecordCartMutation(r.Context(), telemetry.CartOperationRemove)
	writeJSONResponse(w, http.StatusOK, view)
}

// Open handles POST /v1/cart/open
func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.OpenCart())
}

// Close handles POST /v1/cart/close
func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.CloseCart())
}
