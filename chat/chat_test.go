package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestNewChat(t *testing.T) {
	c := New()
	require.NotEmpty(t, c.ID)
	require.Equal(t, DefaultTitle, c.Title)
	require.Empty(t, c.Messages)
	require.Equal(t, c.CreationTimestamp, c.UpdateTimestamp)
}

func TestAppendSetsTitleFromFirstUserMessage(t *testing.T) {
	c := New()
	c.Append(NewUserMessage("What is the revenue for 2023?"))

	require.Equal(t, "What is the revenue for 2023?", c.Title)
	require.Len(t, c.Messages, 1)
	require.GreaterOrEqual(t, c.UpdateTimestamp, c.CreationTimestamp)
}

func TestAppendTruncatesLongTitle(t *testing.T) {
	c := New()
	content := strings.Repeat("a", 50)
	c.Append(NewUserMessage(content))

	require.Equal(t, strings.Repeat("a", 30)+"...", c.Title)
	require.Len(t, c.Title, 33)
}

func TestDeriveTitleCountsRunesNotBytes(t *testing.T) {
	// 30 characters, more than 30 bytes: no truncation.
	content := strings.Repeat("a", 29) + "é"
	require.Equal(t, content, DeriveTitle(content))

	// Truncation never splits a multi-byte character.
	title := DeriveTitle(strings.Repeat("é", 31))
	require.True(t, utf8.ValidString(title))
	require.Equal(t, strings.Repeat("é", 30)+"...", title)
}

func TestAppendKeepsCustomTitle(t *testing.T) {
	c := New()
	c.Title = "Quarterly report"
	c.Append(NewUserMessage("hello"))
	require.Equal(t, "Quarterly report", c.Title)
}

func TestAppendDoesNotRetitleNonEmptyChat(t *testing.T) {
	c := New()
	c.Append(NewUserMessage("first question"))
	c.Append(NewAssistantMessage("answer"))
	c.Append(NewUserMessage("second question"))
	require.Equal(t, "first question", c.Title)
}

func TestAssistantMessageDoesNotSetTitle(t *testing.T) {
	c := New()
	c.Append(NewAssistantMessage("unsolicited"))
	require.Equal(t, DefaultTitle, c.Title)
}

func TestMessageRoles(t *testing.T) {
	user := NewUserMessage("q")
	assistant := NewAssistantMessage("a")

	require.Equal(t, RoleUser, user.Role)
	require.Equal(t, RoleAssistant, assistant.Role)
	require.NotEqual(t, user.ID, assistant.ID)
}
