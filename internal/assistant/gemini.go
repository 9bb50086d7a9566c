package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures the Gemini backend
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiBackend creates chat sessions on the Gemini API
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend builds a backend. Without an API key the backend is still
// returned, but every CreateSession fails with ErrMissingAPIKey.
func NewGeminiBackend(ctx context.Context, cfg GeminiConfig) (*GeminiBackend, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	if cfg.APIKey == "" {
		slog.Warn("Gemini API key not configured, shopping assistant will be unavailable")
		return &GeminiBackend{model: model}, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	slog.Info("Gemini backend initialized", "model", model, "timeout", timeout.String())

	return &GeminiBackend{client: client, model: model}, nil
}

// Model returns the configured model name
func (b *GeminiBackend) Model() string {
	return b.model
}

// CreateSession opens a chat bound to the system instruction
func (b *GeminiBackend) CreateSession(ctx context.Context, systemInstruction string, temperature float32) (Conversation, error) {
	if b.client == nil {
		return nil, ErrMissingAPIKey
	}

	chat, err := b.client.Chats.Create(ctx, b.model, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		Temperature:       genai.Ptr(temperature),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("GenAI chat create failed: %w", err)
	}

	return &geminiConversation{chat: chat}, nil
}

type geminiConversation struct {
	chat *genai.Chat
}

func (c *geminiConversation) Send(ctx context.Context, text string) (string, error) {
	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("GenAI send failed: %w", err)
	}
	return resp.Text(), nil
}
