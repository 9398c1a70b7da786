package session

import (
	"fmt"
	"strings"

	"github.com/docq/docq/chat"
	"github.com/docq/docq/cli/chat/styles"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	b.WriteString(styles.ViewportStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.renderSearch())
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Enter to open, Esc to close"))
	} else if m.awaiting {
		b.WriteString(fmt.Sprintf("%s Researching your question...\n", m.spinner.View()))
	} else {
		b.WriteString(styles.TextAreaStyle.Render(m.textarea.View()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return m.alert.Render(b.String())
}

func (m *Model) renderTitle() string {
	sessionStr := "no documents"
	if m.store.SessionID() != "" {
		sessionStr = "session " + m.store.SessionID()
	}

	title := fmt.Sprintf(" 📄 docq │ 💬 %s │ %s ", styles.Truncate(m.chat.Title, 40), sessionStr)
	return styles.TitleStyle.Width(m.width).Render(title)
}

func (m *Model) renderMessages() string {
	if len(m.chat.Messages) == 0 {
		return styles.DimTextStyle.Render("Upload documents with `docq upload`, then ask away.")
	}

	var b strings.Builder
	for i, message := range m.chat.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch message.Role {
		case chat.RoleUser:
			rendered := m.renderer.ToMarkdown(message.Content, message.ID)
			b.WriteString(styles.UserMessageStyle.Render(rendered))

		case chat.RoleAssistant:
			rendered := m.renderer.ToMarkdown(message.Content, message.ID)
			b.WriteString(styles.AssistantMessageStyle.Render(rendered))
		}
	}
	return b.String()
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(styles.SearchTitleStyle.Render("🔍 Search chats"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")

	switch {
	case strings.TrimSpace(m.searchInput.Value()) == "":
		// An empty query shows no results, unlike a query with no matches.
	case len(m.searchResults) == 0:
		b.WriteString(styles.DimTextStyle.Render("No chats found"))
	default:
		for i, c := range m.searchResults {
			b.WriteString("\n")
			line := fmt.Sprintf("%s  %s", c.ID, styles.Truncate(c.Title, 50))
			if i == m.searchSelection {
				b.WriteString(styles.SearchSelectedStyle.Render("> " + line))
			} else {
				b.WriteString(styles.SearchResultStyle.Render("  " + line))
			}
		}
	}

	return styles.SearchBoxStyle.Render(b.String())
}
