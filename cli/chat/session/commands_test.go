package session

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/docq/docq/chat"
	"github.com/docq/docq/store"
)

func newTestModel(t *testing.T, answer string) (*Model, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryMedium(), store.Keys{})
	s.SetSessionID("session-1")

	sender := chat.NewSender(s, func(ctx context.Context, sessionID, question string) (string, error) {
		return answer, nil
	})

	active := chat.New()
	m, err := New(context.Background(), nil, s, sender, nil, active)
	require.NoError(t, err)
	return m, s
}

// extractAskResult runs the command returned by sendMessage and pulls the ask
// result out of the batch.
func extractAskResult(t *testing.T, cmd tea.Cmd) askResultMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if result, ok := c().(askResultMsg); ok {
			return result
		}
	}
	t.Fatal("no ask result in batch")
	return askResultMsg{}
}

func TestSendMessageLifecycle(t *testing.T) {
	m, _ := newTestModel(t, "An answer.")
	asked := m.chat

	m.textarea.SetValue("a question")
	cmd := m.sendMessage()

	require.True(t, m.awaiting)
	require.Len(t, asked.Messages, 1)
	require.Equal(t, chat.RoleUser, asked.Messages[0].Role)

	m.resolveAsk(extractAskResult(t, cmd))

	require.False(t, m.awaiting)
	require.Len(t, asked.Messages, 2)
	require.Equal(t, chat.RoleAssistant, asked.Messages[1].Role)
	require.Equal(t, "An answer.", asked.Messages[1].Content)
}

func TestAnswerFollowsOriginatingChat(t *testing.T) {
	m, s := newTestModel(t, "An answer.")
	asked := m.chat

	m.textarea.SetValue("a question")
	cmd := m.sendMessage()

	// Switch away (as the search overlay allows) while the ask is in flight.
	other := chat.New()
	m.switchChat(other)

	m.resolveAsk(extractAskResult(t, cmd))

	// The answer lands in the chat the question came from, not the displayed one.
	require.Len(t, asked.Messages, 2)
	require.Equal(t, chat.RoleUser, asked.Messages[0].Role)
	require.Equal(t, chat.RoleAssistant, asked.Messages[1].Role)
	require.Empty(t, other.Messages)

	// And that is what got persisted.
	for _, c := range s.ListChats() {
		if c.ID == asked.ID {
			require.Len(t, c.Messages, 2)
		}
	}
}

func TestSendMessageRejectsEmptyInput(t *testing.T) {
	m, _ := newTestModel(t, "unused")
	m.textarea.SetValue("   ")
	require.Nil(t, m.sendMessage())
	require.False(t, m.awaiting)
	require.Empty(t, m.chat.Messages)
}
