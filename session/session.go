// Package session implements backend session management commands.
package session

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/docq/docq/internal/api"
	"github.com/docq/docq/internal/cli"
	"github.com/docq/docq/store"
)

// NewCmd instantiates and returns the session command group.
func NewCmd(s *store.Store, client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and manage the current backend session",
	}
	cmd.AddCommand(newInfoCmd(s, client))
	cmd.AddCommand(newDeleteCmd(s, client))
	cmd.AddCommand(newPromptCmd(s, client))
	return cmd
}

func sessionID(s *store.Store) (string, error) {
	id := s.SessionID()
	if id == "" {
		return "", errors.New("no session: upload documents first")
	}
	return id, nil
}

func newInfoCmd(s *store.Store, client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the current session's metadata",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID(s)
			if err != nil {
				return err
			}
			info, err := client.GetSessionInfo(cmd.Context(), id)
			if err != nil {
				return err
			}

			cli.Title("DOCQ SESSION")
			cli.SessionInfo("session %s\n", info.SessionID)
			cli.SessionInfo("created %s\n", time.Unix(int64(info.CreatedAt), 0).Format(time.DateTime))
			cli.SessionInfo("%d file(s)\n", info.FileCount)
			for _, name := range info.FileNames {
				cli.FileInfo("📎 %s\n", name)
			}
			return nil
		},
	}
}

func newDeleteCmd(s *store.Store, client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the current session and its indexed documents",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID(s)
			if err != nil {
				return err
			}
			if !cli.QueryUser("Delete session " + id + "?") {
				return nil
			}
			response, err := client.DeleteSession(cmd.Context(), id)
			if err != nil {
				return err
			}
			s.SetSessionID("")
			cli.SessionInfo("%s\n", response.Message)
			return nil
		},
	}
}

func newPromptCmd(s *store.Store, client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt TEXT...",
		Short: "Set the session's custom answer-generation prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID(s)
			if err != nil {
				return err
			}
			response, err := client.UpdateSessionPrompt(cmd.Context(), id, strings.Join(args, " "))
			if err != nil {
				return err
			}
			cli.SessionInfo("%s\n", response.Message)
			return nil
		},
	}
}

// NewHealthCmd instantiates and returns the backend health command.
func NewHealthCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend health",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			cli.SessionInfo("status: %s\n", health.Status)
			cli.SessionInfo("active sessions: %d\n", health.ActiveSessions)
			cli.SessionInfo("models loaded: %t\n", health.ModelsLoaded)
			return nil
		},
	}
}
