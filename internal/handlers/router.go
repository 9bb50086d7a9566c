package handlers

import (
	"net/http"

	"storefront-api/internal/storefront"
	"storefront-api/internal/telemetry"

	"github.com/gorilla/mux"
)

// RouterConfig holds what the HTTP surface needs
type RouterConfig struct {
	Session             *storefront.Session
	Telemetry           *telemetry.StorefrontTelemetry
	AssistantConfigured bool
}

// NewRouter registers every storefront route with request telemetry applied
func NewRouter(cfg RouterConfig) *mux.Router {
	st := cfg.Telemetry
	if st == nil {
		st = telemetry.NewStorefrontTelemetry()
	}

	healthHandler := NewHealthHandler(cfg.Session, cfg.AssistantConfigured)
	catalogHandler := NewCatalogHandler(cfg.Session, st)
	cartHandler := NewCartHandler(cfg.Session, st)
	viewHandler := NewViewHandler(cfg.Session)
	orderHandler := NewOrderHandler(cfg.Session, st)
	assistantHandler := NewAssistantHandler(cfg.Session, st)

	instrument := telemetry.NewTelemetryMiddleware(st).Middleware

	r := mux.NewRouter()
	r.Use(instrument)

	// mux skips Use middleware for unmatched requests
	r.NotFoundHandler = instrument(http.HandlerFunc(notFound))
	r.MethodNotAllowedHandler = instrument(http.HandlerFunc(methodNotAllowed))

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Specific catalog routes before the {itemId} pattern
	v1.HandleFunc("/catalog", catalogHandler.Browse).Methods(http.MethodGet)
	v1.HandleFunc("/catalog/reset", catalogHandler.Reset).Methods(http.MethodPost)
	v1.HandleFunc("/catalog/items", catalogHandler.SubmitItem).Methods(http.MethodPost)
	v1.HandleFunc("/catalog/{itemId}", catalogHandler.GetItem).Methods(http.MethodGet)

	v1.HandleFunc("/cart", cartHandler.GetCart).Methods(http.MethodGet)
	v1.HandleFunc("/cart/items", cartHandler.AddItem).Methods(http.MethodPost)
	v1.HandleFunc("/cart/items/{itemId}", cartHandler.UpdateItem).Methods(http.MethodPatch)
	v1.HandleFunc("/cart/items/{itemId}", cartHandler.RemoveItem).Methods(http.MethodDelete)
	v1.HandleFunc("/cart/open", cartHandler.Open).Methods(http.MethodPost)
	v1.HandleFunc("/cart/close", cartHandler.Close).Methods(http.MethodPost)

	v1.HandleFunc("/view", viewHandler.GetView).Methods(http.MethodGet)
	v1.HandleFunc("/view/home", viewHandler.Home).Methods(http.MethodPost)
	v1.HandleFunc("/view/sell", viewHandler.Sell).Methods(http.MethodPost)
	v1.HandleFunc("/view/checkout", viewHandler.Checkout).Methods(http.MethodPost)
	v1.HandleFunc("/view/product/{itemId}", viewHandler.ShowProduct).Methods(http.MethodPost)

	v1.HandleFunc("/orders", orderHandler.PlaceOrder).Methods(http.MethodPost)

	v1.HandleFunc("/assistant/open", assistantHandler.Open).Methods(http.MethodPost)
	v1.HandleFunc("/assistant/close", assistantHandler.Close).Methods(http.MethodPost)
	v1.HandleFunc("/assistant/messages", assistantHandler.Messages).Methods(http.MethodGet)
	v1.HandleFunc("/assistant/messages", assistantHandler.Send).Methods(http.MethodPost)

	return r
}
