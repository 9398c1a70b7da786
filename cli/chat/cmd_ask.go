package chat

import (
	"context"
	"strings"

	"github.com/buger/goterm"
	"github.com/spf13/cobra"

	"github.com/docq/docq/chat"
	"github.com/docq/docq/internal/api"
	"github.com/docq/docq/internal/cli"
	"github.com/docq/docq/internal/configuration"
	"github.com/docq/docq/internal/markdown"
	"github.com/docq/docq/store"
)

// NewAskCmd instantiates and returns the one-shot ask command. The exchange
// goes through the same lifecycle as the TUI and lands in the active chat.
func NewAskCmd(config *configuration.Config, s *store.Store, client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question about your documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				var err error
				question, err = cli.PromptUser()
				if err != nil {
					return err
				}
			}

			chats := s.ListChats()
			active := chat.New()
			if activeID := s.ActiveChat(); activeID != "" {
				for _, c := range chats {
					if c.ID == activeID {
						active = c
						break
					}
				}
			}

			sender := chat.NewSender(s, func(ctx context.Context, sessionID, question string) (string, error) {
				response, err := client.Ask(ctx, sessionID, question, "")
				if err != nil {
					return "", err
				}
				return response.Content, nil
			})

			assistantMessage, err := sender.Send(cmd.Context(), active, question)
			if err != nil {
				return err
			}
			s.SetActiveChat(active.ID)

			renderer, err := markdown.NewRenderer(goterm.Width())
			if err != nil {
				return err
			}
			cli.Answer(renderer.ToMarkdown(assistantMessage.Content, "") + "\n")
			return nil
		},
	}
	return cmd
}
