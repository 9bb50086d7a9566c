package telemetry

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// TelemetryMiddleware wraps HTTP handlers to automatically collect telemetry
type TelemetryMiddleware struct {
	telemetry *StorefrontTelemetry
}

// NewTelemetryMiddleware creates a new telemetry middleware
func NewTelemetryMiddleware(telemetry *StorefrontTelemetry) *TelemetryMiddleware {
	return &TelemetryMiddleware{telemetry: telemetry}
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// endpointFor prefers the matched mux route template over the raw path
func endpointFor(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return GetEndpointFromPath(r.URL.Path)
}

// Middleware returns the HTTP middleware function
func (tm *TelemetryMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		clientIP := getClientIP(r)
		metrics := RequestMetrics{
			Method:       r.Method,
			Endpoint:     endpointFor(r),
			ClientIP:     clientIP,
			ClientIPType: NormalizeClientIP(clientIP),
		}

		next.ServeHTTP(wrapper, r)

		metrics.StatusCode = wrapper.statusCode
		metrics.Duration = time.Since(start)

		ctx := r.Context()
		if wrapper.statusCode >= 400 {
			metrics.ErrorMessage = http.StatusText(wrapper.statusCode)
			tm.telemetry.RegisterRequestError(ctx, metrics)
		} else {
			tm.telemetry.RegisterRequestReceived(ctx, metrics)
		}

		tm.telemetry.RegisterRequestDuration(ctx, metrics)
	})
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(data []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(data)
}
