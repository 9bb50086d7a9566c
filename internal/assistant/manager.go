package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"storefront-api/internal/catalog"

	"golang.org/x/sync/semaphore"
)

// CatalogSource supplies the items the system instruction is built from
type CatalogSource interface {
	All() []catalog.Item
}

// ManagerConfig holds the collaborators of a Manager
type ManagerConfig struct {
	Backend     Backend
	Catalog     CatalogSource
	Persona     Persona
	Temperature float32
}

// Snapshot is a consistent view of the chat widget
type Snapshot struct {
	Open    bool    `json:"open"`
	Ready   bool    `json:"ready"`
	Busy    bool    `json:"busy"`
	Entries []Entry `json:"messages"`
}

// Manager owns the conversation handle and transcript for one storefront
// session. The handle is created on the first successful Open and kept for
// the lifetime of the Manager.
type Manager struct {
	backend     Backend
	catalog     CatalogSource
	persona     Persona
	temperature float32

	// slot admits one turn at a time
	slot *semaphore.Weighted

	mu           sync.Mutex
	conversation Conversation
	open         bool
	busy         bool
	transcript   []Entry
}

// NewManager creates a manager whose transcript starts with the greeting
func NewManager(cfg ManagerConfig) *Manager {
	persona := cfg.Persona
	if persona.StoreName == "" || persona.AssistantName == "" {
		persona = DefaultPersona
	}

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	greeting := Entry{
		ID:        WelcomeID,
		Role:      RoleAssistant,
		Text:      persona.Greeting(),
		CreatedAt: time.Now().UTC(),
	}

	return &Manager{
		backend:     cfg.Backend,
		catalog:     cfg.Catalog,
		persona:     persona,
		temperature: temperature,
		slot:        semaphore.NewWeighted(1),
		transcript:  []Entry{greeting},
	}
}

// Open marks the widget open and creates the conversation if none exists.
// A creation failure is returned for diagnostics; the next Open retries.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open = true
	if m.conversation != nil {
		slog.Debug("Chat widget reopened, reusing existing session")
		return nil
	}

	if m.backend == nil {
		slog.Warn("Chat session not created, no backend configured")
		return ErrNotInitialized
	}

	var items []catalog.Item
	if m.catalog != nil {
		items = m.catalog.All()
	}
	instruction := BuildInstruction(m.persona, items)

	conversation, err := m.backend.CreateSession(ctx, instruction, m.temperature)
	if err != nil {
		slog.Warn("Failed to create chat session", "error", err)
		return fmt.Errorf("error creating chat session: %w", err)
	}

	m.conversation = conversation
	slog.Info("Chat session created",
		"catalog_items", len(items),
		"temperature", m.temperature)

	return nil
}

// Close hides the widget. The session, transcript and any in-flight turn are untouched.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// Send appends the user turn, waits for one reply and appends it.
//
// ErrEmptyMessage and ErrBusy reject the call without touching the
// transcript. Every other failure is reported as an error-flagged
// assistant entry and a nil error. The round trip is detached from ctx
// cancellation, so an abandoned caller still gets its reply recorded.
func (m *Manager) Send(ctx context.Context, text string) (Entry, error) {
	if strings.TrimSpace(text) == "" {
		return Entry{}, ErrEmptyMessage
	}

	if !m.slot.TryAcquire(1) {
		slog.Warn("Chat send rejected, a turn is already in flight")
		return Entry{}, ErrBusy
	}
	defer m.slot.Release(1)

	m.mu.Lock()
	m.busy = true
	m.transcript = append(m.transcript, newEntry(RoleUser, text, false))
	conversation := m.conversation
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}()

	reply, err := roundTrip(context.WithoutCancel(ctx), conversation, text)
	if err != nil {
		if errors.Is(err, ErrNotInitialized) {
			slog.Warn("Chat send failed, session not initialized")
		} else {
			slog.Error("Chat send failed", "error", err)
		}
		return m.appendEntry(newEntry(RoleAssistant, ApologyReply, true)), nil
	}

	if strings.TrimSpace(reply) == "" {
		slog.Debug("Chat reply was empty, using fallback text")
		reply = FallbackReply
	}

	entry := m.appendEntry(newEntry(RoleAssistant, reply, false))
	slog.Debug("Chat turn completed", "reply_length", len(reply))
	return entry, nil
}

func roundTrip(ctx context.Context, conversation Conversation, text string) (reply string, err error) {
	if conversation == nil {
		return "", ErrNotInitialized
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conversation panicked: %v", r)
		}
	}()

	return conversation.Send(ctx, text)
}

func (m *Manager) appendEntry(entry Entry) Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcript = append(m.transcript, entry)
	return entry
}

// Transcript returns a copy of every entry in order
func (m *Manager) Transcript() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, len(m.transcript))
	copy(out, m.transcript)
	return out
}

// Busy reports whether a turn is in flight
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// IsOpen reports whether the widget is open
func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Ready reports whether a conversation exists
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conversation != nil
}

// Snapshot returns widget state and transcript under one lock
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, len(m.transcript))
	copy(entries, m.transcript)

	return Snapshot{
		Open:    m.open,
		Ready:   m.conversation != nil,
		Busy:    m.busy,
		Entries: entries,
	}
}
