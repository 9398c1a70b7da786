package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docq/docq/chat"
)

func newTestStore() *Store {
	return New(NewMemoryMedium(), Keys{})
}

func newChat(title string) *chat.Chat {
	c := chat.New()
	c.Title = title
	return c
}

func TestSaveChatRoundTrip(t *testing.T) {
	s := newTestStore()
	c := newChat("budget review")
	c.Append(chat.NewUserMessage("what is the budget?"))

	s.SaveChat(c)

	chats := s.ListChats()
	require.Len(t, chats, 1)
	require.Equal(t, c.ID, chats[0].ID)
	require.Equal(t, "budget review", chats[0].Title)
	require.Len(t, chats[0].Messages, 1)
	require.Equal(t, "what is the budget?", chats[0].Messages[0].Content)
}

func TestSaveChatInsertsNewAtFront(t *testing.T) {
	s := newTestStore()
	first := newChat("first")
	second := newChat("second")

	s.SaveChat(first)
	s.SaveChat(second)

	chats := s.ListChats()
	require.Len(t, chats, 2)
	require.Equal(t, second.ID, chats[0].ID)
	require.Equal(t, first.ID, chats[1].ID)
}

func TestSaveChatReplacesInPlace(t *testing.T) {
	s := newTestStore()
	first := newChat("first")
	second := newChat("second")
	third := newChat("third")
	s.SaveChat(first)
	s.SaveChat(second)
	s.SaveChat(third)

	// Updating the middle chat must not move it.
	second.Title = "second, revised"
	s.SaveChat(second)

	chats := s.ListChats()
	require.Len(t, chats, 3)
	require.Equal(t, third.ID, chats[0].ID)
	require.Equal(t, second.ID, chats[1].ID)
	require.Equal(t, "second, revised", chats[1].Title)
	require.Equal(t, first.ID, chats[2].ID)
}

func TestDeleteChat(t *testing.T) {
	s := newTestStore()
	keep := newChat("keep")
	drop := newChat("drop")
	s.SaveChat(keep)
	s.SaveChat(drop)

	s.DeleteChat(drop.ID)

	chats := s.ListChats()
	require.Len(t, chats, 1)
	require.Equal(t, keep.ID, chats[0].ID)
}

func TestDeleteChatClearsActivePointer(t *testing.T) {
	s := newTestStore()
	active := newChat("active")
	other := newChat("other")
	s.SaveChat(active)
	s.SaveChat(other)
	s.SetActiveChat(active.ID)

	s.DeleteChat(other.ID)
	require.Equal(t, active.ID, s.ActiveChat())

	s.DeleteChat(active.ID)
	require.Equal(t, "", s.ActiveChat())
}

func TestListChatsDropsMalformedRecords(t *testing.T) {
	medium := NewMemoryMedium()
	s := New(medium, Keys{})

	value, err := json.Marshal([]*chat.Chat{newChat("valid"), {Title: "no id"}, nil})
	require.NoError(t, err)
	require.NoError(t, medium.Set(DefaultKeys.Chats, value))

	chats := s.ListChats()
	require.Len(t, chats, 1)
	require.Equal(t, "valid", chats[0].Title)
}

func TestListChatsCorruptBlob(t *testing.T) {
	medium := NewMemoryMedium()
	s := New(medium, Keys{})
	require.NoError(t, medium.Set(DefaultKeys.Chats, []byte("not json")))
	require.Empty(t, s.ListChats())
}

func TestPointerRoundTrips(t *testing.T) {
	s := newTestStore()

	require.Equal(t, "", s.ActiveChat())
	require.Equal(t, "", s.SessionID())

	s.SetActiveChat("chat-1")
	s.SetSessionID("session-9")
	require.Equal(t, "chat-1", s.ActiveChat())
	require.Equal(t, "session-9", s.SessionID())

	s.SetSessionID("")
	require.Equal(t, "", s.SessionID())
	require.Equal(t, "chat-1", s.ActiveChat())
}

func TestNilMediumIsNoOp(t *testing.T) {
	s := New(nil, Keys{})

	s.SaveChat(newChat("ignored"))
	s.SetActiveChat("chat-1")
	s.SetSessionID("session-9")
	s.DeleteChat("chat-1")

	require.Empty(t, s.ListChats())
	require.Equal(t, "", s.ActiveChat())
	require.Equal(t, "", s.SessionID())
	require.NoError(t, s.Close())
}

func TestCustomKeys(t *testing.T) {
	medium := NewMemoryMedium()
	s := New(medium, Keys{Chats: "c", ActiveChat: "a", Session: "s"})

	s.SaveChat(newChat("hello"))
	_, ok, err := medium.Get("c")
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = medium.Get(DefaultKeys.Chats)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteMediumRoundTrip(t *testing.T) {
	medium, err := OpenSQLite(t.TempDir() + "/docq.db")
	require.NoError(t, err)
	defer medium.Close()

	_, ok, err := medium.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, medium.Set("key", []byte(`"value"`)))
	require.NoError(t, medium.Set("key", []byte(`"replaced"`)))

	value, ok, err := medium.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `"replaced"`, string(value))
}
