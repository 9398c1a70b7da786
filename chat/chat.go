package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles a message can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	// DefaultTitle of a chat that has no messages yet.
	DefaultTitle = "New chat"
	// Maximum length of a title derived from the first message.
	titleMaxLength = 30
	titleSuffix    = "..."
)

// Message represents a single message of a chat. Immutable once created.
type Message struct {
	// ID of this message.
	ID string `json:"id"`
	// Content of this message. May contain markdown.
	Content string `json:"content"`
	// Role of the author ("user" or "assistant").
	Role string `json:"role"`
	// Time at which this message was created.
	Timestamp int64 `json:"timestamp"`
}

// Chat represents a titled, ordered conversation of messages.
type Chat struct {
	// ID of this chat.
	ID string `json:"id"`
	// Title of this chat, derived from the first message if unset.
	Title string `json:"title"`
	// The messages of this chat, in insertion order.
	Messages []*Message `json:"messages"`
	// Time at which this chat was created.
	CreationTimestamp int64 `json:"creation_timestamp"`
	// Time at which this chat was last mutated.
	UpdateTimestamp int64 `json:"update_timestamp"`
}

// New instantiates and returns a new chat.
func New() *Chat {
	now := time.Now().UnixMicro()
	return &Chat{
		ID:                uuid.New().String()[:8],
		Title:             DefaultTitle,
		CreationTimestamp: now,
		UpdateTimestamp:   now,
	}
}

// NewUserMessage instantiates a user message.
func NewUserMessage(content string) *Message {
	return newMessage(RoleUser, content)
}

// NewAssistantMessage instantiates an assistant message.
func NewAssistantMessage(content string) *Message {
	return newMessage(RoleAssistant, content)
}

func newMessage(role, content string) *Message {
	return &Message{
		ID:        uuid.New().String()[:8],
		Content:   content,
		Role:      role,
		Timestamp: time.Now().UnixMicro(),
	}
}

// Append adds a message to this chat and bumps the update timestamp.
// The first user message of an untitled chat sets the chat title.
func (c *Chat) Append(message *Message) {
	if len(c.Messages) == 0 && message.Role == RoleUser && (c.Title == "" || c.Title == DefaultTitle) {
		c.Title = DeriveTitle(message.Content)
	}
	c.Messages = append(c.Messages, message)
	c.UpdateTimestamp = time.Now().UnixMicro()
}

// DeriveTitle derives a chat title from the first message content, truncating
// to at most titleMaxLength characters. Rune-based so multi-byte content is
// never split mid-character.
func DeriveTitle(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= titleMaxLength {
		return content
	}
	return string(runes[:titleMaxLength]) + titleSuffix
}
