package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestTelemetry(t *testing.T) (*StorefrontTelemetry, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	st := NewStorefrontTelemetry()
	require.NoError(t, st.InitializeTelemetry(context.Background(), provider))
	return st, reader
}

// sumPoints totals an int64 counter per value of key, or overall when key is empty
func sumPoints(t *testing.T, reader *sdkmetric.ManualReader, name string, key attribute.Key) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				label := ""
				if key != "" {
					value, _ := dp.Attributes.Value(key)
					label = value.Emit()
				}
				out[label] += dp.Value
			}
		}
	}
	return out
}

func TestMiddleware_RecordsRouteTemplates(t *testing.T) {
	st, reader := newTestTelemetry(t)

	router := mux.NewRouter()
	router.Use(NewTelemetryMiddleware(st).Middleware)
	router.HandleFunc("/v1/catalog/{itemId}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["itemId"] == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	for _, path := range []string{"/v1/catalog/1", "/v1/catalog/2", "/v1/catalog/404"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	requests := sumPoints(t, reader, "storefront_api_requests_total", "endpoint")
	assert.Equal(t, map[string]int64{"/v1/catalog/{itemId}": 2}, requests)

	errs := sumPoints(t, reader, "storefront_api_errors_total", "error_type")
	assert.Equal(t, map[string]int64{"not_found": 1}, errs)
}

func TestMiddleware_UnmatchedRequestsUsePathFallback(t *testing.T) {
	st, reader := newTestTelemetry(t)
	mw := NewTelemetryMiddleware(st).Middleware

	router := mux.NewRouter()
	router.Use(mw)
	router.HandleFunc("/v1/cart/items/{itemId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPatch)
	router.NotFoundHandler = mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	router.MethodNotAllowedHandler = mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/v1/cart/items/77", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	endpoints := sumPoints(t, reader, "storefront_api_errors_total", "endpoint")
	assert.Equal(t, map[string]int64{"/v1/cart/items/{itemId}": 1, "/missing": 1}, endpoints)

	errs := sumPoints(t, reader, "storefront_api_errors_total", "error_type")
	assert.Equal(t, map[string]int64{"method_not_allowed": 1, "not_found": 1}, errs)
}

func TestBusinessCounters(t *testing.T) {
	st, reader := newTestTelemetry(t)
	ctx := context.Background()

	st.RecordCartMutation(ctx, CartOperationAdd)
	st.RecordCartMutation(ctx, CartOperationAdd)
	st.RecordCartMutation(ctx, CartOperationRemove)
	st.RecordChatTurn(ctx, ChatOutcomeBusy)
	st.RecordOrderPlaced(ctx)
	st.RecordItemSubmitted(ctx, "Home")

	assert.Equal(t, map[string]int64{"add": 2, "remove": 1},
		sumPoints(t, reader, "storefront_cart_mutations_total", "operation"))
	assert.Equal(t, map[string]int64{"busy": 1},
		sumPoints(t, reader, "storefront_chat_turns_total", "outcome"))
	assert.Equal(t, map[string]int64{"": 1},
		sumPoints(t, reader, "storefront_orders_placed_total", ""))
	assert.Equal(t, map[string]int64{"Home": 1},
		sumPoints(t, reader, "storefront_items_submitted_total", "category"))
}

func TestUninitializedTelemetryIsNoop(t *testing.T) {
	st := NewStorefrontTelemetry()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		st.RecordCartMutation(ctx, CartOperationUpdate)
		st.RecordOrderPlaced(ctx)
		st.RegisterRequestReceived(ctx, RequestMetrics{Method: http.MethodGet})
		st.RegisterRequestError(ctx, RequestMetrics{Method: http.MethodGet})
		st.RegisterRequestDuration(ctx, RequestMetrics{Method: http.MethodGet})
	})
}

func TestGetEndpointFromPath(t *testing.T) {
	testCases := map[string]string{
		"/v1/catalog":            "/v1/catalog",
		"/v1/catalog/7":          "/v1/catalog/{itemId}",
		"/v1/catalog/reset":      "/v1/catalog/reset",
		"/v1/catalog/items":      "/v1/catalog/items",
		"/v1/cart/items/12":      "/v1/cart/items/{itemId}",
		"/v1/view/product/3":     "/v1/view/product/{itemId}",
		"/v1/view/home":          "/v1/view/home",
		"/v1/assistant/messages": "/v1/assistant/messages",
		"/health":                "/health",
	}

	for path, want := range testCases {
		assert.Equal(t, want, GetEndpointFromPath(path), path)
	}
}

func TestNormalizeClientIP(t *testing.T) {
	assert.Equal(t, "unknown", NormalizeClientIP(""))
	assert.Equal(t, "invalid", NormalizeClientIP("not-an-ip"))
	assert.Equal(t, "localhost", NormalizeClientIP("127.0.0.1"))
	assert.Equal(t, "internal", NormalizeClientIP("10.1.2.3"))
	assert.Equal(t, "internal", NormalizeClientIP("192.168.0.10"))
	assert.Equal(t, "external", NormalizeClientIP("8.8.8.8"))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.5:5555"
	assert.Equal(t, "10.0.0.5", getClientIP(req))

	req.Header.Set("X-Real-IP", "192.168.1.1")
	assert.Equal(t, "192.168.1.1", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", getClientIP(req))
}
