package main

import (
	"time"

	"github.com/spf13/cobra"

	clichat "github.com/docq/docq/cli/chat"
	"github.com/docq/docq/internal/api"
	"github.com/docq/docq/internal/configuration"
	"github.com/docq/docq/internal/debug"
	"github.com/docq/docq/session"
	"github.com/docq/docq/store"
	"github.com/docq/docq/upload"
)

const configFilepath = "~/.config/docq/config.json"

var rootCmd = &cobra.Command{
	Use:     "docq",
	Short:   "A terminal client for document question answering",
	Version: "1.0",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	// Open the persistence medium. If it cannot be opened the client still
	// runs, with chats held in memory only.
	var medium store.Medium
	sqliteMedium, err := store.OpenSQLite(config.Database)
	if err != nil {
		debug.GetLogger().Error("opening store medium", "error", err)
	} else {
		medium = sqliteMedium
	}
	s := store.New(medium, store.Keys{
		Chats:      config.Storage.ChatsKey,
		ActiveChat: config.Storage.ActiveChatKey,
		Session:    config.Storage.SessionKey,
	})
	defer s.Close()

	client := api.New(config.APIBaseURL, time.Duration(config.RequestTimeout)*time.Second)

	rootCmd.AddCommand(clichat.NewCmd(config, s, client))
	rootCmd.AddCommand(clichat.NewListCmd(s))
	rootCmd.AddCommand(clichat.NewDeleteCmd(s))
	rootCmd.AddCommand(clichat.NewAskCmd(config, s, client))
	rootCmd.AddCommand(upload.NewCmd(s, client))
	rootCmd.AddCommand(session.NewCmd(s, client))
	rootCmd.AddCommand(session.NewHealthCmd(client))
	rootCmd.Execute()
}
