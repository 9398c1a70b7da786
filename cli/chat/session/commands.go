package session

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docq/docq/chat"
)

// askResultMsg carries the outcome of a backend ask, bound to the chat the
// question was asked from. The user may have switched chats in the meantime.
type askResultMsg struct {
	chat    *chat.Chat
	content string
	err     error
}

// sendMessage starts an exchange: the user message is appended and persisted
// synchronously (optimistic write), then the ask runs off the event loop.
func (m *Model) sendMessage() tea.Cmd {
	userInput := strings.TrimSpace(m.textarea.Value())
	if userInput == "" {
		return nil
	}

	userMessage, err := m.sender.Begin(m.chat, userInput)
	if err != nil {
		m.err = err
		m.recalculateLayout()
		return nil
	}
	m.err = nil

	m.history.Add(userInput)
	m.historyNavigating = false
	m.textarea.Reset()

	m.trackChat()
	m.store.SetActiveChat(m.chat.ID)

	m.awaiting = true
	m.recalculateLayout()
	m.viewport.GotoBottom()

	question := userMessage.Content
	target := m.chat
	sender := m.sender
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		content, err := sender.Ask(ctx, question)
		return askResultMsg{chat: target, content: content, err: err}
	})
}

// resolveAsk finishes the exchange on the event loop: the assistant message
// (answer, fallback, or fixed apology on failure) is appended and persisted
// into the chat the question came from, which may no longer be displayed.
func (m *Model) resolveAsk(result askResultMsg) {
	if result.err != nil {
		log.Error("ask failed", "chat", result.chat.ID, "error", result.err)
	}
	m.sender.Resolve(result.chat, result.content, result.err)
	m.awaiting = false

	if result.chat != m.chat {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.recalculateLayout()
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// newChat starts an empty chat. It is only persisted once a message arrives.
func (m *Model) newChat() {
	m.switchChat(chat.New())
}
