package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

const appDirName = "graphpilot"

// Loader reads configuration with the precedence: defaults, config file,
// .env file, process environment. Later sources win.
type Loader struct {
	fs afero.Fs

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

// NewLoader creates a loader over the real filesystem.
func NewLoader() *Loader {
	return &Loader{fs: afero.NewOsFs()}
}

// NewLoaderWithFs creates a loader over the given filesystem, used in tests.
func NewLoaderWithFs(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// DefaultConfigPath returns the user config file location.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, "config.json")
}

// DefaultChatDBPath returns the default chat database location.
func DefaultChatDBPath() string {
	return filepath.Join(xdg.StateHome, appDirName, "chats.db")
}

// Load assembles the configuration. A missing config file is not an error;
// environment variables alone can configure everything.
func (l *Loader) Load() (*Config, error) {
	config := defaultConfig()

	path := l.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := l.loadFile(path, config); err != nil {
		return nil, err
	}

	// .env values only fill variables that are not already exported.
	_ = godotenv.Load()

	applyEnvironment(config)
	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Model: "gpt-4o",
		},
		Storage: StorageConfig{
			ChatDBPath: DefaultChatDBPath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (l *Loader) loadFile(path string, config *Config) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, config)
}

func applyEnvironment(config *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.API.OpenAIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		config.API.Model = v
	}
	if v := os.Getenv("GRAPH_TOKEN"); v != "" {
		config.Graph.Token = v
	}
	if v := os.Getenv("GRAPH_BASE_URL"); v != "" {
		config.Graph.BaseURL = v
	}
	if v := os.Getenv("GRAPH_USER_ID"); v != "" {
		config.Graph.UserID = v
	}
	if v := os.Getenv("GRAPH_DEFAULT_LIST_ID"); v != "" {
		config.Graph.DefaultListID = v
	}
	if v := os.Getenv("GRAPHPILOT_CHAT_DB"); v != "" {
		config.Storage.ChatDBPath = v
	}
	if v := os.Getenv("GRAPHPILOT_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
}
