package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpittamp/graphpilot/src/assistant"
	"github.com/vpittamp/graphpilot/src/chatstore"
	"github.com/vpittamp/graphpilot/src/render"
)

type scriptedRunner struct {
	result *assistant.TurnResult
}

func (s *scriptedRunner) Turn(_ context.Context, _ string, _ *chatstore.Chat, _ string) (*assistant.TurnResult, error) {
	return s.result, nil
}

func TestRunTurnPrintsToolTextResult(t *testing.T) {
	runner := &scriptedRunner{result: &assistant.TurnResult{
		ChatID: "chat-1",
		Node:   render.Text{Content: "Deleted 2 tasks."},
	}}

	var out bytes.Buffer
	err := runTurn(context.Background(), &out, runner, "user-1", &chatstore.Chat{}, "delete them", 80)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Deleted 2 tasks.")
}

func TestRunTurnSkipsAlreadyStreamedText(t *testing.T) {
	runner := &scriptedRunner{result: &assistant.TurnResult{
		ChatID:   "chat-1",
		Node:     render.Text{Content: "Hello, world"},
		Streamed: true,
	}}

	var out bytes.Buffer
	err := runTurn(context.Background(), &out, runner, "user-1", &chatstore.Chat{}, "hi", 80)
	require.NoError(t, err)
	// The deltas already went out; printing the node again would duplicate.
	assert.NotContains(t, out.String(), "Hello, world")
}

func TestRunTurnRendersCards(t *testing.T) {
	runner := &scriptedRunner{result: &assistant.TurnResult{
		ChatID: "chat-1",
		Node:   render.ErrorNote{Message: "upstream down"},
	}}

	var out bytes.Buffer
	err := runTurn(context.Background(), &out, runner, "user-1", &chatstore.Chat{}, "weather", 80)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "upstream down")
}
