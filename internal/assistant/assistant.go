// Package assistant runs the storefront shopping assistant: one lazily
// created conversation per storefront session, a local append-only
// transcript, and a single-flight guard so only one turn is in flight.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotInitialized means no conversation exists yet, for example because Open
	// was never called or the backend has no credentials
	ErrNotInitialized = errors.New("chat assistant not initialized")

	// ErrBusy is returned when a turn is already in flight
	ErrBusy = errors.New("chat assistant is busy")

	// ErrEmptyMessage is returned for blank user input
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMissingAPIKey is returned by backends created without credentials
	ErrMissingAPIKey = errors.New("conversational service API key is not configured")
)

const (
	// DefaultTemperature is the response randomness every session is created with
	DefaultTemperature float32 = 0.7

	// WelcomeID identifies the greeting that opens every transcript
	WelcomeID = "welcome"

	// FallbackReply is shown when the service answers with an empty body
	FallbackReply = "I'm checking that for you..."

	// ApologyReply is shown for every failed turn. The cause is only logged.
	ApologyReply = "I'm having trouble connecting. Please try again later."
)

// Role says who authored a transcript entry
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one transcript turn
type Entry struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	IsError   bool      `json:"isError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newEntry(role Role, text string, isError bool) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		IsError:   isError,
		CreatedAt: time.Now().UTC(),
	}
}

// Backend creates conversations on the external service
type Backend interface {
	CreateSession(ctx context.Context, systemInstruction string, temperature float32) (Conversation, error)
}

// Conversation is a handle to one remote chat. The remote side keeps the
// turn history.
type Conversation interface {
	Send(ctx context.Context, text string) (string, error)
}
