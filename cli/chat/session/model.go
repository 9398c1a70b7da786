package session

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/docq/docq/chat"
	"github.com/docq/docq/cli/chat/styles"
	"github.com/docq/docq/internal/configuration"
	"github.com/docq/docq/internal/debug"
	"github.com/docq/docq/internal/history"
	"github.com/docq/docq/internal/markdown"
	"github.com/docq/docq/store"
)

var log = debug.GetLogger()

// Model represents the Bubble Tea model for the chat view.
type Model struct {
	// Core dependencies
	ctx    context.Context
	config *configuration.Config
	store  *store.Store
	sender *chat.Sender

	// Chat state. chats is the in-memory working copy of the chat list,
	// newest-first; chat points at the displayed one.
	chats []*chat.Chat
	chat  *chat.Chat

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer

	// UI state
	width         int
	height        int
	ready         bool
	awaiting      bool
	err           error
	quitting      bool
	windowFocused bool

	// Alert notifications.
	alert bubbleup.AlertModel

	// Search overlay state
	searching       bool
	searchInput     textinput.Model
	searchResults   []*chat.Chat
	searchSelection int

	// Input history
	history           *history.History
	historyNavigating bool
}

// New creates a new chat view model.
func New(
	ctx context.Context,
	config *configuration.Config,
	s *store.Store,
	sender *chat.Sender,
	chats []*chat.Chat,
	active *chat.Chat,
) (*Model, error) {
	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = "Ask a question about your documents... (Ctrl+J to send, Ctrl+F to search, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(styles.DefaultTextareaWidth)
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.Prompt = ""

	// Create search input
	si := textinput.New()
	si.Placeholder = "Search chats..."
	si.CharLimit = 0

	// Create spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	alert := bubbleup.NewAlertModel(25, true, 1)

	renderer, err := markdown.NewRenderer(styles.DefaultTextareaWidth)
	if err != nil {
		return nil, err
	}

	return &Model{
		ctx:           ctx,
		config:        config,
		store:         s,
		sender:        sender,
		chats:         chats,
		chat:          active,
		windowFocused: true,
		textarea:      ta,
		searchInput:   si,
		spinner:       sp,
		history:       history.NewHistory(),
		renderer:      renderer,
		alert:         *alert,
	}, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alert.Init(),
	)
}

// switchChat displays another chat and records it as active.
func (m *Model) switchChat(c *chat.Chat) {
	m.chat = c
	m.store.SetActiveChat(c.ID)
	m.err = nil
	m.recalculateLayout()
	m.viewport.GotoBottom()
}

// trackChat ensures the displayed chat is part of the working copy,
// front-inserting it the first time it gains a message.
func (m *Model) trackChat() {
	for _, c := range m.chats {
		if c.ID == m.chat.ID {
			return
		}
	}
	m.chats = append([]*chat.Chat{m.chat}, m.chats...)
}

// lastAnswer returns the content of the most recent assistant message.
func (m *Model) lastAnswer() (string, bool) {
	for i := len(m.chat.Messages) - 1; i >= 0; i-- {
		if m.chat.Messages[i].Role == chat.RoleAssistant {
			return m.chat.Messages[i].Content, true
		}
	}
	return "", false
}
