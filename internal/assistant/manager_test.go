package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-api/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	mu           sync.Mutex
	created      int
	instructions []string
	temperature  float32
	createErr    error
	conversation *fakeConversation
}

func (b *fakeBackend) CreateSession(_ context.Context, instruction string, temperature float32) (Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.createErr != nil {
		return nil, b.createErr
	}
	b.created++
	b.instructions = append(b.instructions, instruction)
	b.temperature = temperature
	if b.conversation == nil {
		b.conversation = &fakeConversation{}
	}
	return b.conversation, nil
}

type fakeConversation struct {
	mu      sync.Mutex
	reply   string
	err     error
	panics  bool
	gate    chan struct{}
	entered chan struct{}
	ctxErr  error
	sent    []string
}

func (c *fakeConversation) Send(ctx context.Context, text string) (string, error) {
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.gate != nil {
		<-c.gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ctxErr = ctx.Err()
	c.sent = append(c.sent, text)
	if c.panics {
		panic("boom")
	}
	return c.reply, c.err
}

func newTestManager(backend Backend) *Manager {
	return NewManager(ManagerConfig{
		Backend: backend,
		Catalog: catalog.NewStore(catalog.SeedItems()),
	})
}

func TestManager_TranscriptStartsWithGreeting(t *testing.T) {
	m := newTestManager(&fakeBackend{})

	entries := m.Transcript()
	require.Len(t, entries, 1)
	assert.Equal(t, WelcomeID, entries[0].ID)
	assert.Equal(t, RoleAssistant, entries[0].Role)
	assert.Contains(t, entries[0].Text, "Skyline shopping assistant")
}

func TestManager_SendBeforeOpenYieldsErrorEntry(t *testing.T) {
	m := newTestManager(&fakeBackend{})

	entry, err := m.Send(context.Background(), "Do you sell chairs?")
	require.NoError(t, err)
	assert.True(t, entry.IsError)
	assert.Equal(t, RoleAssistant, entry.Role)
	assert.Equal(t, ApologyReply, entry.Text)

	entries := m.Transcript()
	require.Len(t, entries, 3)
	assert.Equal(t, RoleUser, entries[1].Role)
	assert.Equal(t, "Do you sell chairs?", entries[1].Text)
	assert.False(t, m.Busy())
}

func TestManager_OpenIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestManager(backend)

	require.NoError(t, m.Open(context.Background()))
	m.Close()
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.Open(context.Background()))

	assert.Equal(t, 1, backend.created)
	assert.True(t, m.Ready())
	assert.True(t, m.IsOpen())
	assert.Equal(t, DefaultTemperature, backend.temperature)
}

func TestManager_OpenRetriesAfterFailure(t *testing.T) {
	backend := &fakeBackend{createErr: ErrMissingAPIKey}
	m := newTestManager(backend)

	err := m.Open(context.Background())
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, m.Ready())
	assert.True(t, m.IsOpen(), "widget opens even when the session cannot be created")

	backend.createErr = nil
	require.NoError(t, m.Open(context.Background()))
	assert.True(t, m.Ready())
}

func TestManager_InstructionIsCatalogSnapshot(t *testing.T) {
	backend := &fakeBackend{}
	store := catalog.NewStore(catalog.SeedItems())
	m := NewManager(ManagerConfig{Backend: backend, Catalog: store})

	require.NoError(t, m.Open(context.Background()))
	store.Append(catalog.Item{ID: 77, Title: "Late Arrival", Category: catalog.CategoryHome})
	m.Close()
	require.NoError(t, m.Open(context.Background()))

	require.Len(t, backend.instructions, 1)
	instruction := backend.instructions[0]
	assert.Contains(t, instruction, "ID: 1, Name: Premium Noise-Canceling Headphones, Price: $299.99, Category: Electronics")
	assert.Contains(t, instruction, "ID: 10, Name: Aromatherapy Diffuser")
	assert.NotContains(t, instruction, "Late Arrival")
	assert.Contains(t, instruction, `You are "Sky"`)
}

func TestManager_SendOutcomes(t *testing.T) {
	testCases := []struct {
		name      string
		reply     string
		err       error
		panics    bool
		wantText  string
		wantError bool
	}{
		{name: "reply appended", reply: "Try the keyboard! ⌨️", wantText: "Try the keyboard! ⌨️"},
		{name: "empty reply uses fallback", reply: "", wantText: FallbackReply},
		{name: "whitespace reply uses fallback", reply: "  \n", wantText: FallbackReply},
		{name: "service error is not leaked", err: errors.New("rpc error: quota exceeded for key AIza..."), wantText: ApologyReply, wantError: true},
		{name: "panic is contained", panics: true, wantText: ApologyReply, wantError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conversation := &fakeConversation{reply: tc.reply, err: tc.err, panics: tc.panics}
			m := newTestManager(&fakeBackend{conversation: conversation})
			require.NoError(t, m.Open(context.Background()))

			entry, err := m.Send(context.Background(), "recommend something")
			require.NoError(t, err)
			assert.Equal(t, tc.wantText, entry.Text)
			assert.Equal(t, tc.wantError, entry.IsError)
			assert.NotEmpty(t, entry.ID)
			assert.False(t, m.Busy())

			for _, e := range m.Transcript() {
				assert.False(t, strings.Contains(e.Text, "quota"), "internal error detail leaked")
			}
		})
	}
}

func TestManager_EmptyMessageRejected(t *testing.T) {
	m := newTestManager(&fakeBackend{})

	_, err := m.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, m.Transcript(), 1)
}

func TestManager_SingleFlight(t *testing.T) {
	conversation := &fakeConversation{
		reply:   "first answer",
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	m := newTestManager(&fakeBackend{conversation: conversation})
	require.NoError(t, m.Open(context.Background()))

	done := make(chan Entry, 1)
	go func() {
		entry, _ := m.Send(context.Background(), "first")
		done <- entry
	}()

	<-conversation.entered
	assert.True(t, m.Busy())
	assert.True(t, m.Snapshot().Busy)

	_, err := m.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(conversation.gate)
	entry := <-done
	assert.Equal(t, "first answer", entry.Text)
	assert.False(t, m.Busy())

	entries := m.Transcript()
	require.Len(t, entries, 3, "rejected send leaves no trace")
	assert.Equal(t, "first", entries[1].Text)
	assert.Equal(t, []string{"first"}, conversation.sent)

	conversation.gate = nil
	conversation.entered = nil
	_, err = m.Send(context.Background(), "third")
	assert.NoError(t, err, "slot released after the first turn")
}

func TestManager_CallerCancellationDoesNotAbortTurn(t *testing.T) {
	conversation := &fakeConversation{
		reply:   "still here",
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	m := newTestManager(&fakeBackend{conversation: conversation})
	require.NoError(t, m.Open(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Entry, 1)
	go func() {
		entry, _ := m.Send(ctx, "are you there?")
		done <- entry
	}()

	<-conversation.entered
	cancel()
	m.Close()
	close(conversation.gate)

	select {
	case entry := <-done:
		assert.Equal(t, "still here", entry.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("send did not complete")
	}
	assert.NoError(t, conversation.ctxErr)

	snapshot := m.Snapshot()
	assert.False(t, snapshot.Open)
	assert.Len(t, snapshot.Entries, 3)
}

func TestGeminiBackend_WithoutKey(t *testing.T) {
	backend, err := NewGeminiBackend(context.Background(), GeminiConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultGeminiModel, backend.Model())

	_, err = backend.CreateSession(context.Background(), "instruction", DefaultTemperature)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	m := newTestManager(backend)
	assert.ErrorIs(t, m.Open(context.Background()), ErrMissingAPIKey)

	entry, err := m.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, entry.IsError)
}

func TestPersona_Greeting(t *testing.T) {
	assert.Equal(t, "Hi! I'm your Skyline shopping assistant 🤖. What are you looking for today?", DefaultPersona.Greeting())
	assert.Contains(t, Persona{StoreName: "Acme", AssistantName: "Ace"}.Greeting(), "your Acme shopping")
}
