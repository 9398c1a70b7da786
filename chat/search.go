package chat

import "strings"

// Search filters chats whose title or any message content contains the query,
// case-insensitively. An empty query matches nothing.
func Search(chats []*Chat, query string) []*Chat {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []*Chat
	for _, c := range chats {
		if matchesQuery(c, query) {
			matches = append(matches, c)
		}
	}
	return matches
}

func matchesQuery(c *Chat, query string) bool {
	if strings.Contains(strings.ToLower(c.Title), query) {
		return true
	}
	for _, message := range c.Messages {
		if strings.Contains(strings.ToLower(message.Content), query) {
			return true
		}
	}
	return false
}
