package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/pkg/errors"

	"github.com/docq/docq/internal/paths"
)

var defaultConfig = Config{
	APIBaseURL:     "http://localhost:8000",
	RequestTimeout: 30,
	Database:       "~/.config/docq/docq.db",

	Storage: &StorageConfig{
		ChatsKey:      "docq-chats",
		ActiveChatKey: "docq-active-chat",
		SessionKey:    "docq-session",
	},
}

// Config holds configuration for the docq tool.
type Config struct {
	APIBaseURL     string `json:"api_base_url"`
	RequestTimeout int    `json:"request_timeout"`
	Database       string `json:"database"`

	Storage *StorageConfig `json:"storage"`
}

// StorageConfig names the keys under which local state is persisted.
type StorageConfig struct {
	// The key under which the chat list is stored.
	ChatsKey string `json:"chats_key"`
	// The key under which the active-chat pointer is stored.
	ActiveChatKey string `json:"active_chat_key"`
	// The key under which the backend session id is stored.
	SessionKey string `json:"session_key"`
}

// Parse a configuration file. Missing fields are filled from defaults;
// DOCQ_API_BASE_URL overrides the configured base URL.
func Parse(path string) (*Config, error) {
	path, err := paths.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	if err := mergo.Merge(config, defaultConfig); err != nil {
		return nil, errors.Wrap(err, "merging defaults")
	}

	if baseURL := os.Getenv("DOCQ_API_BASE_URL"); baseURL != "" {
		config.APIBaseURL = baseURL
	}

	expandedDatabasePath, err := paths.Expand(config.Database)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.Database = expandedDatabasePath
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
