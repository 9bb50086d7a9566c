package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName scopes every storefront instrument
const MeterName = "storefront-api"

// Cart mutation operations
const (
	CartOperationAdd    = "add"
	CartOperationUpdate = "update_quantity"
	CartOperationRemove = "remove"
)

// Chat turn outcomes
const (
	ChatOutcomeReply = "reply"
	ChatOutcomeError = "error"
	ChatOutcomeBusy  = "busy"
)

// StorefrontTelemetry provides the API and business instruments of the storefront
type StorefrontTelemetry struct {
	meter metric.Meter

	requestCounter    metric.Int64Counter
	errorCounter      metric.Int64Counter
	durationHistogram metric.Float64Histogram

	cartMutationCounter  metric.Int64Counter
	orderCounter         metric.Int64Counter
	chatTurnCounter      metric.Int64Counter
	itemSubmittedCounter metric.Int64Counter
}

// RequestMetrics contains the telemetry data for a request
type RequestMetrics struct {
	Method       string
	Endpoint     string
	StatusCode   int
	Duration     time.Duration
	ErrorMessage string
	// Raw IP is only logged; the normalised type goes on the metric
	ClientIP     string
	ClientIPType string
}

// NewStorefrontTelemetry creates an uninitialised instance. Recording on it is a logged no-op.
func NewStorefrontTelemetry() *StorefrontTelemetry {
	return &StorefrontTelemetry{}
}

// InitializeTelemetry creates every instrument on the provider, or on the global one when nil
func (t *StorefrontTelemetry) InitializeTelemetry(ctx context.Context, provider metric.MeterProvider) error {
	slog.Info("Initializing storefront telemetry")

	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	t.meter = provider.Meter(MeterName)

	var err error

	t.requestCounter, err = t.meter.Int64Counter(
		"storefront_api_requests_total",
		metric.WithDescription("Total number of successful storefront API requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request counter: %w", err)
	}

	t.errorCounter, err = t.meter.Int64Counter(
		"storefront_api_errors_total",
		metric.WithDescription("Total number of storefront API requests answered with an error status"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create error counter: %w", err)
	}

	t.durationHistogram, err = t.meter.Float64Histogram(
		"storefront_api_request_duration_seconds",
		metric.WithDescription("Duration of storefront API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}

	t.cartMutationCounter, err = t.meter.Int64Counter(
		"storefront_cart_mutations_total",
		metric.WithDescription("Total number of applied cart mutations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create cart mutation counter: %w", err)
	}

	t.orderCounter, err = t.meter.Int64Counter(
		"storefront_orders_placed_total",
		metric.WithDescription("Total number of placed orders"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create order counter: %w", err)
	}

	t.chatTurnCounter, err = t.meter.Int64Counter(
		"storefront_chat_turns_total",
		metric.WithDescription("Total number of shopping assistant turns by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create chat turn counter: %w", err)
	}

	t.itemSubmittedCounter, err = t.meter.Int64Counter(
		"storefront_items_submitted_total",
		metric.WithDescription("Total number of seller submissions added to the catalog"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create item submission counter: %w", err)
	}

	slog.Info("Storefront telemetry initialized successfully")
	return nil
}

func requestAttributes(m RequestMetrics) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("method", m.Method),
		attribute.String("endpoint", m.Endpoint),
		attribute.Int("status_code", m.StatusCode),
	}
	if m.ClientIPType != "" {
		attrs = append(attrs, attribute.String("client_ip_type", m.ClientIPType))
	}
	return attrs
}

// RegisterRequestReceived records a successful API request
func (t *StorefrontTelemetry) RegisterRequestReceived(ctx context.Context, m RequestMetrics) {
	if t.requestCounter == nil {
		slog.Warn("Request counter not initialized")
		return
	}

	t.requestCounter.Add(ctx, 1, metric.WithAttributes(requestAttributes(m)...))

	slog.Debug("Recorded successful API request",
		"method", m.Method,
		"endpoint", m.Endpoint,
		"status_code", m.StatusCode,
		"client_ip", m.ClientIP,
		"duration_ms", m.Duration.Milliseconds())
}

// RegisterRequestError records a failed API request
func (t *StorefrontTelemetry) RegisterRequestError(ctx context.Context, m RequestMetrics) {
	if t.errorCounter == nil {
		slog.Warn("Error counter not initialized")
		return
	}

	attrs := append(requestAttributes(m), attribute.String("error_type", categorizeError(m.ErrorMessage)))
	t.errorCounter.Add(ctx, 1, metric.WithAttributes(attrs...))

	slog.Debug("Recorded API request error",
		"method", m.Method,
		"endpoint", m.Endpoint,
		"status_code", m.StatusCode,
		"client_ip", m.ClientIP,
		"error", m.ErrorMessage)
}

// RegisterRequestDuration records the duration of an API request
func (t *StorefrontTelemetry) RegisterRequestDuration(ctx context.Context, m RequestMetrics) {
	if t.durationHistogram == nil {
		slog.Warn("Duration histogram not initialized")
		return
	}

	t.durationHistogram.Record(ctx, m.Duration.Seconds(), metric.WithAttributes(requestAttributes(m)...))
}

// RecordCartMutation counts one applied cart change
func (t *StorefrontTelemetry) RecordCartMutation(ctx context.Context, operation string) {
	if t.cartMutationCounter == nil {
		return
	}
	t.cartMutationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordOrderPlaced counts one placed order
func (t *StorefrontTelemetry) RecordOrderPlaced(ctx context.Context) {
	if t.orderCounter == nil {
		return
	}
	t.orderCounter.Add(ctx, 1)
}

// RecordChatTurn counts one assistant turn by outcome
func (t *StorefrontTelemetry) RecordChatTurn(ctx context.Context, outcome string) {
	if t.chatTurnCounter == nil {
		return
	}
	t.chatTurnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordItemSubmitted counts one accepted seller submission by category
func (t *StorefrontTelemetry) RecordItemSubmitted(ctx context.Context, category string) {
	if t.itemSubmittedCounter == nil {
		return
	}
	t.itemSubmittedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

// categorizeError groups similar errors to prevent high cardinality
func categorizeError(errorMessage string) string {
	if errorMessage == "" {
		return "unknown"
	}

	message := strings.ToLower(errorMessage)
	switch {
	case strings.Contains(message, "not found"):
		return "not_found"
	case strings.Contains(message, "conflict"):
		return "invalid_transition"
	case strings.Contains(message, "too many"):
		return "busy"
	case strings.Contains(message, "bad request"):
		return "bad_request"
	case strings.Contains(message, "method not allowed"):
		return "method_not_allowed"
	case strings.Contains(message, "timeout"):
		return "timeout"
	case strings.Contains(message, "internal"):
		return "internal_error"
	default:
		return "other"
	}
}

// GetEndpointFromPath normalizes a raw path to its route template. The
// middleware falls back to it when no mux route matched, as in the router's
// not-found and method-not-allowed handlers.
func GetEndpointFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 3 || segments[0] != "v1" {
		return path
	}

	switch {
	case segments[1] == "catalog" && len(segments) == 3 && segments[2] != "reset" && segments[2] != "items":
		return "/v1/catalog/{itemId}"
	case segments[1] == "cart" && len(segments) == 4 && segments[2] == "items":
		return "/v1/cart/items/{itemId}"
	case segments[1] == "view" && len(segments) == 4 && segments[2] == "product":
		return "/v1/view/product/{itemId}"
	default:
		return path
	}
}

// NormalizeClientIP categorizes client IPs to control cardinality
func NormalizeClientIP(clientIP string) string {
	if clientIP == "" {
		return "unknown"
	}

	ip := net.ParseIP(clientIP)
	if ip == nil {
		return "invalid"
	}

	if ip.IsLoopback() {
		return "localhost"
	}
	if ip.IsPrivate() || ip.IsLinkLocalUnicast() {
		return "internal"
	}
	return "external"
}
