// Package config loads and validates application configuration from the
// user config file, the process environment, and an optional .env file.
package config

import "fmt"

// Config is the complete application configuration.
type Config struct {
	// API configuration for the chat-completion service
	API APIConfig `json:"api"`

	// Graph configuration for the Microsoft Graph service
	Graph GraphConfig `json:"graph"`

	// Storage configuration
	Storage StorageConfig `json:"storage"`

	// Logging configuration
	Log LogConfig `json:"log"`
}

// APIConfig configures the chat-completion client.
type APIConfig struct {
	// OpenAIKey is the API key. Required before any chat turn.
	OpenAIKey string `json:"openai_key" validate:"required"`

	// BaseURL overrides the API endpoint.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// Model is the chat-completion model id.
	Model string `json:"model" validate:"required"`
}

// GraphConfig configures the Microsoft Graph client.
type GraphConfig struct {
	// Token is the bearer credential. Token refresh is the identity
	// provider's job, not ours.
	Token string `json:"token"`

	// BaseURL overrides the Graph endpoint.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// UserID is the principal chats are owned by.
	UserID string `json:"user_id"`

	// DefaultListID is the To-Do list the task tools operate on.
	DefaultListID string `json:"default_list_id"`
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	// ChatDBPath is the sqlite database holding chat sessions.
	ChatDBPath string `json:"chat_db_path"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `json:"level" validate:"omitempty,oneof=debug info warn error"`
}

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}
