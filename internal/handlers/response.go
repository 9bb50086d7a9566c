package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"storefront-api/internal/assistant"
	"storefront-api/internal/catalog"
	"storefront-api/internal/models"
	"storefront-api/internal/navigator"
	"storefront-api/internal/storefront"

	"github.com/gorilla/mux"
)

// writeJSONResponse is a helper function to write JSON responses
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeErrorResponse is a helper function to write error responses
func writeErrorResponse(w http.ResponseWriter, statusCode int, code, message string, details []models.ErrorDetail) {
	writeJSONResponse(w, statusCode, models.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// writeDomainError maps session errors to the API error classes
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *catalog.ValidationError

	switch {
	case errors.As(err, &validationErr):
		details := make([]models.ErrorDetail, 0, len(validationErr.Issues))
		for _, issue := range validationErr.Issues {
			details = append(details, models.ErrorDetail{Field: issue.Field, Issue: issue.Issue})
		}
		writeErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Submission is incomplete", details)
	case errors.Is(err, catalog.ErrEmptyImage):
		writeErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Submission is incomplete",
			[]models.ErrorDetail{{Field: "image", Issue: "is required"}})
	case errors.Is(err, catalog.ErrUnknownCategory):
		writeErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Unknown category",
			[]models.ErrorDetail{{Field: "category", Issue: "is not a known category"}})
	case errors.Is(err, assistant.ErrEmptyMessage):
		writeErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Message is empty",
			[]models.ErrorDetail{{Field: "text", Issue: "is required"}})
	case errors.Is(err, storefront.ErrItemNotFound):
		writeErrorResponse(w, http.StatusNotFound, models.CodeNotFound, err.Error(), nil)
	case errors.Is(err, navigator.ErrInvalidTransition):
		writeErrorResponse(w, http.StatusConflict, models.CodeInvalidTransition, err.Error(), nil)
	case errors.Is(err, assistant.ErrBusy):
		writeErrorResponse(w, http.StatusTooManyRequests, models.CodeBusy, "The assistant is still answering the previous message", nil)
	default:
		slog.Error("Unhandled storefront error", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, models.CodeInternalError, "Internal server error", nil)
	}
}

// decodeJSON reads at most maxUploadSize bytes of the request body into v,
// answering 413 on an oversized body and 400 on malformed input
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("Request body too large", "path", r.URL.Path, "limit", tooLarge.Limit, "remote_addr", r.RemoteAddr)
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, models.CodePayloadTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), nil)
			return false
		}
		slog.Warn("Invalid JSON in request", "path", r.URL.Path, "error", err, "remote_addr", r.RemoteAddr)
		writeErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest, "Invalid JSON", nil)
		return false
	}
	return true
}

// notFound answers requests that match no route
func notFound(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "No route for "+r.URL.Path, nil)
}

// methodNotAllowed answers a known path requested with the wrong method
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusMethodNotAllowed, models.CodeMethodNotAllowed,
		r.Method+" is not allowed on "+r.URL.Path, nil)
}

// itemIDFromPath parses the {itemId} route variable
func itemIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["itemId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest,
			fmt.Sprintf("Invalid item id %q", raw),
			[]models.ErrorDetail{{Field: "itemId", Issue: "must be an integer"}})
		return 0, false
	}
	return id, true
}
