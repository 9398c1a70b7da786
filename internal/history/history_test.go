package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	return &History{
		entries: make([]string, 0),
		index:   -1,
		path:    filepath.Join(t.TempDir(), historyFileName),
	}
}

func TestNavigation(t *testing.T) {
	h := newTestHistory(t)
	h.Add("first")
	h.Add("second")

	entry, ok := h.Previous("draft")
	require.True(t, ok)
	require.Equal(t, "second", entry)

	entry, ok = h.Previous("draft")
	require.True(t, ok)
	require.Equal(t, "first", entry)

	// Already at the oldest entry.
	_, ok = h.Previous("draft")
	require.False(t, ok)

	entry, ok = h.Next()
	require.True(t, ok)
	require.Equal(t, "second", entry)

	// Stepping past the newest entry restores the draft.
	entry, ok = h.Next()
	require.True(t, ok)
	require.Equal(t, "draft", entry)

	_, ok = h.Next()
	require.False(t, ok)
}

func TestAddCollapsesDuplicatesAndResets(t *testing.T) {
	h := newTestHistory(t)
	h.Add("same")
	h.Add("same")
	require.Len(t, h.entries, 1)

	_, ok := h.Previous("")
	require.True(t, ok)
	h.Reset()
	_, ok = h.Next()
	require.False(t, ok)
}

func TestPersistenceRoundTrip(t *testing.T) {
	h := newTestHistory(t)
	h.Add("multi\nline entry")
	h.Add("plain entry")

	reloaded := &History{entries: make([]string, 0), index: -1, path: h.path}
	reloaded.load()
	require.Equal(t, []string{"multi\nline entry", "plain entry"}, reloaded.entries)
}
