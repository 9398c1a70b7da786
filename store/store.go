package store

import (
	"log/slog"

	"github.com/docq/docq/internal/debug"
)

// Keys under which the store persists its values. Each value is a
// JSON-serialized blob under its own key.
type Keys struct {
	Chats      string
	ActiveChat string
	Session    string
}

// DefaultKeys used when the configuration does not override them.
var DefaultKeys = Keys{
	Chats:      "docq-chats",
	ActiveChat: "docq-active-chat",
	Session:    "docq-session",
}

// Store persists the chat list, the active-chat pointer and the session id.
// Read and write failures are logged and swallowed: callers always get a
// usable (possibly empty) result. With a nil medium every operation is a
// no-op returning neutral values.
type Store struct {
	medium Medium
	keys   Keys
	log    *slog.Logger
}

// New instantiates a store over the given medium. A nil medium disables
// persistence without error.
func New(medium Medium, keys Keys) *Store {
	if keys.Chats == "" {
		keys = DefaultKeys
	}
	return &Store{
		medium: medium,
		keys:   keys,
		log:    debug.GetLogger(),
	}
}

// Close the underlying medium, if any.
func (s *Store) Close() error {
	if s.medium == nil {
		return nil
	}
	return s.medium.Close()
}
