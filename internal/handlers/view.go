package handlers

import (
	"net/http"

	"storefront-api/internal/storefront"
	"storefront-api/internal/telemetry"
)

// ViewHandler handles screen navigation
type ViewHandler struct {
	session *storefront.Session
}

// NewViewHandler creates a new view handler
func NewViewHandler(session *storefront.Session) *ViewHandler {
	return &ViewHandler{session: session}
}

// GetView handles GET /v1/view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.View())
}

// Home handles POST /v1/view/home
func (h *ViewHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.GoHome())
}

// Sell handles POST /v1/view/sell
func (h *ViewHandler) Sell(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.OpenSell())
}

// Checkout handles POST /v1/view/checkout
func (h *ViewHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.Checkout())
}

// ShowProduct handles POST /v1/view/product/{itemId}
func (h *ViewHandler) ShowProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	state, err := h.session.ShowProduct(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, state)
}

// OrderHandler handles order submission
type OrderHandler struct {
	session   *storefront.Session
	telemetry *telemetry.StorefrontTelemetry
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(session *storefront.Session, st *telemetry.StorefrontTelemetry) *OrderHandler {
	return &OrderHandler{session: session, telemetry: st}
}

// PlaceOrder handles POST /v1/orders - only valid on the checkout screen
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.session.PlaceOrder()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.telemetry.RecordOrderPlaced(r.Context())
	writeJSONResponse(w, http.StatusCreated, order)
}
