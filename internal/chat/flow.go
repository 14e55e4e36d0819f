// Package chat implements the turn-based assistant flow: one retained
// session per activation, an append-only transcript, and a pending guard
// that keeps turns strictly sequential.
package chat

import (
	"context"
	"sync"

	"github.com/promptstudio/internal/domain"
)

// Turner is the single-session slice of the AI boundary the flow needs.
type Turner interface {
	SendTurn(ctx context.Context, text string) (string, error)
}

// FallbackReply is appended as a model message when a turn fails. Failures
// surface inside the transcript, not as a separate error.
const FallbackReply = "Sorry, something went wrong. Please try again."

var greetings = map[string]string{
	"en": "Hi! I'm your creative assistant. Ask me anything about prompts, styles, or the image you're working on.",
	"id": "Halo! Saya asisten kreatif Anda. Tanyakan apa saja tentang prompt, gaya, atau gambar yang sedang Anda kerjakan.",
}

// Greeting returns the seeded opening message for a locale.
func Greeting(locale string) string {
	if g, ok := greetings[locale]; ok {
		return g
	}
	return greetings["en"]
}

// Flow owns one conversation. The transcript starts with a greeting that is
// never sent through the gateway.
type Flow struct {
	session Turner

	mu       sync.Mutex
	messages []domain.ChatMessage
	pending  bool
}

// NewFlow seeds the transcript with the greeting for the given locale.
func NewFlow(session Turner, locale string) *Flow {
	return &Flow{
		session:  session,
		messages: []domain.ChatMessage{{Role: domain.RoleModel, Text: Greeting(locale)}},
	}
}

// Send appends the user message, runs one turn against the retained session,
// and appends the reply (or FallbackReply on failure) as a model message.
// A second Send while one is outstanding returns ErrTurnInFlight without
// touching the transcript.
func (f *Flow) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return domain.ChatMessage{}, domain.ErrTurnInFlight
	}
	f.pending = true
	f.messages = append(f.messages, domain.ChatMessage{Role: domain.RoleUser, Text: text})
	f.mu.Unlock()

	reply, err := f.session.SendTurn(ctx, text)
	if err != nil {
		reply = FallbackReply
	}
	msg := domain.ChatMessage{Role: domain.RoleModel, Text: reply}

	f.mu.Lock()
	f.messages = append(f.messages, msg)
	f.pending = false
	f.mu.Unlock()
	return msg, nil
}

// Transcript returns a copy of the ordered message history.
func (f *Flow) Transcript() []domain.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ChatMessage(nil), f.messages...)
}
