package models

import (
	"storefront-api/internal/assistant"
	"storefront-api/internal/catalog"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Error codes
const (
	CodeValidationError   = "validation_error"
	CodeBadRequest        = "bad_request"
	CodeNotFound          = "not_found"
	CodeMethodNotAllowed  = "method_not_allowed"
	CodePayloadTooLarge   = "payload_too_large"
	CodeInvalidTransition = "invalid_transition"
	CodeBusy              = "busy"
	CodeInternalError     = "internal_error"
)

// AddToCartRequest is the body of POST /v1/cart/items
type AddToCartRequest struct {
	ItemID int64 `json:"itemId"`
}

// UpdateQuantityRequest is the body of PATCH /v1/cart/items/{itemId}
type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

// SendMessageRequest is the body of POST /v1/assistant/messages
type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessageResponse carries the assistant reply and the widget state after the turn
type SendMessageResponse struct {
	Reply assistant.Entry    `json:"reply"`
	State assistant.Snapshot `json:"state"`
}

// ItemResponse wraps a catalog item with its display price
type ItemResponse struct {
	catalog.Item
	DisplayPrice string `json:"displayPrice"`
}

// NewItemResponse builds the response for one item
func NewItemResponse(item catalog.Item) ItemResponse {
	return ItemResponse{Item: item, DisplayPrice: catalog.FormatPrice(item.Price)}
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status        string `json:"status"`
	CatalogItems  int    `json:"catalogItems"`
	AssistantMode string `json:"assistant"`
}
