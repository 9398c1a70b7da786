package session

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"

	"github.com/docq/docq/chat"
	"github.com/docq/docq/cli/chat/styles"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()
		m.viewport.GotoBottom()
		return m, tea.Batch(cmds...)

	case tea.FocusMsg:
		m.windowFocused = true
		if !m.searching {
			m.textarea.Focus()
			cmds = append(cmds, textarea.Blink)
		}
		return m, tea.Batch(cmds...)

	case tea.BlurMsg:
		m.windowFocused = false
		m.textarea.Blur()
		return m, tea.Batch(cmds...)

	case askResultMsg:
		m.resolveAsk(msg)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg, cmds)
		}
		return m.updateChatting(msg, cmds)
	}

	// Spinner ticks and other component messages.
	if m.awaiting {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateChatting(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlJ:
		// A pending ask blocks new submissions.
		if !m.awaiting {
			if cmd := m.sendMessage(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyCtrlN:
		if !m.awaiting {
			m.newChat()
		}
		return m, tea.Batch(cmds...)

	case tea.KeyCtrlF:
		m.openSearch()
		return m, tea.Batch(cmds...)
	}

	switch msg.String() {
	case "alt+p":
		if !m.awaiting {
			if entry, ok := m.history.Previous(m.textarea.Value()); ok {
				m.textarea.SetValue(entry)
				m.historyNavigating = true
				m.adjustTextareaHeight()
			}
		}
		return m, tea.Batch(cmds...)

	case "alt+n":
		if !m.awaiting {
			if entry, ok := m.history.Next(); ok {
				m.textarea.SetValue(entry)
				m.historyNavigating = true
				m.adjustTextareaHeight()
			}
		}
		return m, tea.Batch(cmds...)

	case "alt+w":
		if answer, ok := m.lastAnswer(); ok {
			clipboard.Write(clipboard.FmtText, []byte(answer))
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!"))
		}
		return m, tea.Batch(cmds...)
	}

	// Everything else edits the textarea.
	if m.historyNavigating {
		m.history.Reset()
		m.historyNavigating = false
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.adjustTextareaHeight()
	return m, tea.Batch(cmds...)
}

func (m *Model) openSearch() {
	m.searching = true
	m.searchInput.SetValue("")
	m.searchResults = nil
	m.searchSelection = 0
	m.searchInput.Focus()
	m.textarea.Blur()
}

func (m *Model) closeSearch() {
	m.searching = false
	m.searchInput.Blur()
	m.textarea.Focus()
}

func (m *Model) updateSearch(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSearch()
		return m, tea.Batch(cmds...)

	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyUp:
		if m.searchSelection > 0 {
			m.searchSelection--
		}
		return m, tea.Batch(cmds...)

	case tea.KeyDown:
		if m.searchSelection < len(m.searchResults)-1 {
			m.searchSelection++
		}
		return m, tea.Batch(cmds...)

	case tea.KeyEnter:
		if m.searchSelection < len(m.searchResults) {
			m.switchChat(m.searchResults[m.searchSelection])
			m.closeSearch()
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	cmds = append(cmds, cmd)

	m.searchResults = chat.Search(m.chats, m.searchInput.Value())
	if len(m.searchResults) > styles.SearchMaxResults {
		m.searchResults = m.searchResults[:styles.SearchMaxResults]
	}
	if m.searchSelection >= len(m.searchResults) {
		m.searchSelection = 0
	}
	return m, tea.Batch(cmds...)
}
