// Package chat implements the interactive chat view command.
package chat

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"github.com/docq/docq/chat"
	"github.com/docq/docq/cli/chat/session"
	"github.com/docq/docq/internal/api"
	"github.com/docq/docq/internal/configuration"
	"github.com/docq/docq/internal/debug"
	"github.com/docq/docq/store"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config, s *store.Store, client *api.Client) *cobra.Command {
	var opts struct {
		ChatID   string
		Continue bool
		New      bool
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with your uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			chats := s.ListChats()
			active, err := resolveChat(s, chats, opts.ChatID, opts.Continue, opts.New)
			if err != nil {
				return err
			}
			s.SetActiveChat(active.ID)

			sender := chat.NewSender(s, func(ctx context.Context, sessionID, question string) (string, error) {
				response, err := client.Ask(ctx, sessionID, question, "")
				if err != nil {
					return "", err
				}
				return response.Content, nil
			})

			if err := clipboard.Init(); err != nil {
				debug.GetLogger().Error("clipboard unavailable", "error", err)
			}

			m, err := session.New(ctx, config, s, sender, chats, active)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithMouseCellMotion(),
				tea.WithReportFocus(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running chat: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ChatID, "id", "", "open a specific chat")
	cmd.Flags().BoolVarP(&opts.Continue, "continue", "c", false, "open the most recently updated chat")
	cmd.Flags().BoolVarP(&opts.New, "new", "n", false, "start a new chat")
	return cmd
}

// resolveChat picks the chat to display: an explicit id, the most recently
// updated one, a fresh chat, or the persisted active pointer (falling back to
// a fresh chat).
func resolveChat(s *store.Store, chats []*chat.Chat, id string, continueLast, startNew bool) (*chat.Chat, error) {
	switch {
	case id != "":
		for _, c := range chats {
			if c.ID == id {
				return c, nil
			}
		}
		return nil, fmt.Errorf("chat %s not found", id)

	case continueLast:
		var latest *chat.Chat
		for _, c := range chats {
			if latest == nil || c.UpdateTimestamp > latest.UpdateTimestamp {
				latest = c
			}
		}
		if latest == nil {
			return nil, fmt.Errorf("no chat to continue")
		}
		return latest, nil

	case startNew:
		return chat.New(), nil
	}

	if activeID := s.ActiveChat(); activeID != "" {
		for _, c := range chats {
			if c.ID == activeID {
				return c, nil
			}
		}
	}
	return chat.New(), nil
}
