package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vpittamp/graphpilot/src/assistant"
	"github.com/vpittamp/graphpilot/src/assistant/tools"
	"github.com/vpittamp/graphpilot/src/chatstore"
	"github.com/vpittamp/graphpilot/src/config"
	"github.com/vpittamp/graphpilot/src/graph"
	"github.com/vpittamp/graphpilot/src/oaiclient"
)

// defaultWarnTokens is the prompt-size estimate above which a warning is
// logged before each completion request.
const defaultWarnTokens = 100_000

// app holds the wired-up services shared by the CLI commands.
type app struct {
	config *config.Config
	logger *slog.Logger

	graph *graph.Client
	store *chatstore.Store
}

// loadConfig loads and validates configuration without opening any service.
func loadConfig(cli *CLI) (*config.Config, error) {
	loader := config.NewLoader()
	loader.ConfigPath = cli.ConfigPath
	return loader.Load()
}

// newApp wires the Graph client and chat store. The chat-completion client
// is built per chat command because it needs the API key check.
func newApp(cli *CLI) (*app, error) {
	cfg, err := loadConfig(cli)
	if err != nil {
		return nil, err
	}
	logger := createCLILogger(cli.LogLevel)

	graphClient, err := graph.NewClient(graph.Config{
		BaseURL: cfg.Graph.BaseURL,
		Tokens:  graph.StaticTokenSource(cfg.Graph.Token),
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.ChatDBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	store, err := chatstore.Open(cfg.Storage.ChatDBPath)
	if err != nil {
		return nil, err
	}

	return &app{
		config: cfg,
		logger: logger,
		graph:  graphClient,
		store:  store,
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}

// principal returns the identity chats are owned by.
func (a *app) principal() (string, error) {
	if a.config.Graph.UserID == "" {
		return "", fmt.Errorf("GRAPH_USER_ID is not configured")
	}
	return a.config.Graph.UserID, nil
}

// newDispatcher builds the conversational dispatcher over the full tool
// catalog. Missing credentials are reported here, before any turn runs.
func (a *app) newDispatcher() (*assistant.Dispatcher, error) {
	if missing := config.MissingKeys(a.config); len(missing) > 0 {
		return nil, fmt.Errorf("missing configuration: %v", missing)
	}

	model, err := oaiclient.NewClient(oaiclient.Config{
		APIKey:  a.config.API.OpenAIKey,
		BaseURL: a.config.API.BaseURL,
		Model:   a.config.API.Model,
		Logger:  a.logger,
	})
	if err != nil {
		return nil, err
	}

	toolbox, err := tools.DefaultToolbox(a.graph, a.config.Graph.DefaultListID)
	if err != nil {
		return nil, err
	}
	toolbox.RegisterMiddleware(assistant.LoggingMiddleware(a.logger))

	dispatcher := assistant.NewDispatcher(model, a.store, toolbox, a.logger)
	dispatcher.RenderResult = tools.RenderNode
	dispatcher.WarnTokens = defaultWarnTokens
	return dispatcher, nil
}
