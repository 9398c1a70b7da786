package chat

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Fixed assistant replies. Raw backend errors never reach the transcript.
const (
	emptyAnswerFallback = "I apologize, but I couldn't generate a response at this time. Please try again."
	errorAnswer         = "I'm experiencing some technical difficulties. Please try your question again in a moment."
)

var (
	// ErrEmptyMessage is returned when a submission contains no text.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoSession is returned when no documents have been uploaded yet.
	ErrNoSession = errors.New("no session: upload documents first")
	// ErrPending is returned while a previous ask is still in flight.
	ErrPending = errors.New("a question is already pending")
)

// Store is the slice of the chat store the sender needs.
type Store interface {
	SaveChat(chat *Chat)
	SessionID() string
}

// AskFunc asks the backend a question within a session and returns the answer content.
type AskFunc func(ctx context.Context, sessionID, question string) (string, error)

// Sender drives the message lifecycle of a chat: optimistic user append,
// backend ask, assistant append. One ask in flight at a time.
type Sender struct {
	store   Store
	ask     AskFunc
	pending bool
}

// NewSender instantiates a sender.
func NewSender(store Store, ask AskFunc) *Sender {
	return &Sender{store: store, ask: ask}
}

// Pending reports whether an ask is in flight.
func (s *Sender) Pending() bool { return s.pending }

// Begin validates a submission, appends the user message and persists the
// chat. The network has not been touched yet when Begin returns.
func (s *Sender) Begin(chat *Chat, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if s.pending {
		return nil, ErrPending
	}
	if s.store.SessionID() == "" {
		return nil, ErrNoSession
	}

	message := NewUserMessage(content)
	chat.Append(message)
	s.store.SaveChat(chat)
	s.pending = true
	return message, nil
}

// Ask performs the backend call for a begun exchange.
func (s *Sender) Ask(ctx context.Context, question string) (string, error) {
	return s.ask(ctx, s.store.SessionID(), question)
}

// Resolve finishes an exchange: it appends the assistant message derived from
// the ask outcome and persists the chat. A failed ask yields a fixed apology,
// an empty answer a fallback string.
func (s *Sender) Resolve(chat *Chat, content string, err error) *Message {
	defer func() { s.pending = false }()

	switch {
	case err != nil:
		content = errorAnswer
	case strings.TrimSpace(content) == "":
		content = emptyAnswerFallback
	}

	message := NewAssistantMessage(content)
	chat.Append(message)
	s.store.SaveChat(chat)
	return message
}

// Send runs a full exchange synchronously: Begin, Ask, Resolve.
func (s *Sender) Send(ctx context.Context, chat *Chat, content string) (*Message, error) {
	userMessage, err := s.Begin(chat, content)
	if err != nil {
		return nil, err
	}
	answer, askErr := s.Ask(ctx, userMessage.Content)
	return s.Resolve(chat, answer, askErr), nil
}
