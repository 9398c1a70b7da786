package store

import (
	"encoding/json"

	"github.com/docq/docq/chat"
)

// ListChats returns the persisted chat list, newest-first. Missing data, read
// failures and parse failures all yield an empty list; malformed records are
// dropped at this boundary rather than trusted.
func (s *Store) ListChats() []*chat.Chat {
	if s.medium == nil {
		return []*chat.Chat{}
	}

	value, ok, err := s.medium.Get(s.keys.Chats)
	if err != nil {
		s.log.Error("reading chats", "error", err)
		return []*chat.Chat{}
	}
	if !ok {
		return []*chat.Chat{}
	}

	var chats []*chat.Chat
	if err := json.Unmarshal(value, &chats); err != nil {
		s.log.Error("parsing chats", "error", err)
		return []*chat.Chat{}
	}

	valid := chats[:0]
	for _, c := range chats {
		if c == nil || c.ID == "" {
			s.log.Error("dropping malformed chat record")
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// SaveChat upserts a chat by id. An existing chat is replaced in place,
// preserving its position; a new chat is inserted at the front. The whole
// list is written back.
func (s *Store) SaveChat(c *chat.Chat) {
	if s.medium == nil || c == nil {
		return
	}

	chats := s.ListChats()
	replaced := false
	for i := range chats {
		if chats[i].ID == c.ID {
			chats[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		chats = append([]*chat.Chat{c}, chats...)
	}

	s.writeChats(chats)
}

// DeleteChat removes the chat with the given id. Deleting the active chat
// clears the active-chat pointer.
func (s *Store) DeleteChat(id string) {
	if s.medium == nil {
		return
	}

	chats := s.ListChats()
	filtered := chats[:0]
	for _, c := range chats {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	s.writeChats(filtered)

	if s.ActiveChat() == id {
		s.SetActiveChat("")
	}
}

func (s *Store) writeChats(chats []*chat.Chat) {
	value, err := json.Marshal(chats)
	if err != nil {
		s.log.Error("marshaling chats", "error", err)
		return
	}
	if err := s.medium.Set(s.keys.Chats, value); err != nil {
		s.log.Error("writing chats", "error", err)
	}
}
