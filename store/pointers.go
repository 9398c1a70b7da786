package store

import "encoding/json"

// ActiveChat returns the id of the active chat, or "" if none is set.
func (s *Store) ActiveChat() string {
	return s.getScalar(s.keys.ActiveChat)
}

// SetActiveChat persists the active-chat pointer.
func (s *Store) SetActiveChat(id string) {
	s.setScalar(s.keys.ActiveChat, id)
}

// SessionID returns the stored backend session id, or "" if none exists.
// Independent of chat data.
func (s *Store) SessionID() string {
	return s.getScalar(s.keys.Session)
}

// SetSessionID persists the backend session id.
func (s *Store) SetSessionID(id string) {
	s.setScalar(s.keys.Session, id)
}

func (s *Store) getScalar(key string) string {
	if s.medium == nil {
		return ""
	}
	value, ok, err := s.medium.Get(key)
	if err != nil {
		s.log.Error("reading scalar", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	var scalar string
	if err := json.Unmarshal(value, &scalar); err != nil {
		s.log.Error("parsing scalar", "key", key, "error", err)
		return ""
	}
	return scalar
}

func (s *Store) setScalar(key, scalar string) {
	if s.medium == nil {
		return
	}
	value, err := json.Marshal(scalar)
	if err != nil {
		s.log.Error("marshaling scalar", "key", key, "error", err)
		return
	}
	if err := s.medium.Set(key, value); err != nil {
		s.log.Error("writing scalar", "key", key, "error", err)
	}
}
