package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront-api/internal/assistant"
	"storefront-api/internal/models"
	"storefront-api/internal/storefront"
	"storefront-api/internal/telemetry"
)

// AssistantHandler handles the shopping assistant widget
type AssistantHandler struct {
	manager   *assistant.Manager
	telemetry *telemetry.StorefrontTelemetry
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(session *storefront.Session, st *telemetry.StorefrontTelemetry) *AssistantHandler {
	return &AssistantHandler{manager: session.Assistant(), telemetry: st}
}

// Open handles POST /v1/assistant/open. The widget opens even when the
// session cannot be created; ready stays false and sends report an error entry.
func (h *AssistantHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Open(r.Context()); err != nil {
		slog.Warn("Assistant opened without a session", "error", err)
	}
	writeJSONResponse(w, http.StatusOK, h.manager.Snapshot())
}

// Close handles POST /v1/assistant/close
func (h *AssistantHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.manager.Close()
	writeJSONResponse(w, http.StatusOK, h.manager.Snapshot())
}

// Messages handles GET /v1/assistant/messages
func (h *AssistantHandler) Messages(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.manager.Snapshot())
}

// Send handles POST /v1/assistant/messages
func (h *AssistantHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.manager.Send(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, assistant.ErrBusy) {
			h.telemetry.RecordChatTurn(r.Context(), telemetry.ChatOutcomeBusy)
		}
		writeDomainError(w, err)
		return
	}

	outcome := telemetry.ChatOutcomeReply
	if entry.IsError {
		outcome = telemetry.ChatOutcomeError
	}
	h.telemetry.RecordChatTurn(r.Context(), outcome)

	writeJSONResponse(w, http.StatusOK, models.SendMessageResponse{
		Reply: entry,
		State: h.manager.Snapshot(),
	})
}
