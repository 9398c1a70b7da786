// Package upload implements the document upload command.
package upload

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docq/docq/internal/api"
	"github.com/docq/docq/internal/cli"
	"github.com/docq/docq/internal/pdf"
	"github.com/docq/docq/store"
)

// NewCmd instantiates and returns the upload command. A successful upload
// stores the returned session id, which scopes every subsequent ask.
func NewCmd(s *store.Store, client *api.Client) *cobra.Command {
	var opts struct {
		CustomPrompt string
	}
	cmd := &cobra.Command{
		Use:   "upload FILES...",
		Short: "Upload PDFs and start a new session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := pdf.Collect(args)
			if err != nil {
				return err
			}

			uploads := make([]api.File, len(files))
			for i, f := range files {
				uploads[i] = api.File{Name: filepath.Base(f.Path), Data: f.Data}
				cli.FileInfo("📎 %s (%d bytes)\n", f.Path, len(f.Data))
			}

			response, err := client.UploadPDFs(cmd.Context(), uploads, opts.CustomPrompt)
			if err != nil {
				return err
			}

			// The session binding is client-wide, independent of chat data.
			s.SetSessionID(response.SessionID)

			cli.SessionInfo("session %s: %s\n", response.SessionID, response.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.CustomPrompt, "prompt", "p", "", "custom instruction attached to the session")
	return cmd
}
