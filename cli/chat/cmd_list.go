package chat

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/docq/docq/chat"
	"github.com/docq/docq/internal/cli"
	"github.com/docq/docq/store"
)

// NewListCmd instantiates and returns the chats command. With a query
// argument it searches titles and message contents instead of listing.
func NewListCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats [query]",
		Short: "List or search chats",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			chats := s.ListChats()

			if len(args) == 1 {
				chats = chat.Search(chats, args[0])
				cli.Title("DOCQ CHAT SEARCH")
			} else {
				cli.Title("DOCQ CHATS")
			}

			activeID := s.ActiveChat()
			for _, c := range chats {
				marker := " "
				if c.ID == activeID {
					marker = "*"
				}
				cli.SessionInfo("%s chat (%s) - %s - %s\n", marker, c.ID, c.Title, time.UnixMicro(c.UpdateTimestamp).Format(time.DateTime))
				for i := 0; i < 3 && i < len(c.Messages); i++ {
					if c.Messages[i].Role == chat.RoleUser {
						cli.UserInput("  > %s\n", c.Messages[i].Content)
					}
				}
			}
		},
	}
	return cmd
}

// NewDeleteCmd instantiates and returns the chat deletion command.
func NewDeleteCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete CHAT_ID",
		Short: "Delete a chat",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := args[0]
			if !cli.QueryUser("Delete chat " + id + "?") {
				return
			}
			// Deleting the active chat also clears the active pointer.
			s.DeleteChat(id)
			cli.FileInfo("chat %s deleted\n", id)
		},
	}
	return cmd
}
