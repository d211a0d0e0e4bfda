// Package assistant turns user text into conversation-log mutations and
// renderable results, using a fixed catalog of schema-validated tools.
package assistant

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vpittamp/graphpilot/src/aisdk"
	"github.com/vpittamp/graphpilot/src/chatstore"
	"github.com/vpittamp/graphpilot/src/render"
)

// ResultRenderer turns a tool's response into a renderable node. The
// response may carry IsError, in which case the renderer is expected to
// produce a degraded result.
type ResultRenderer func(toolName string, response *aisdk.ToolResponse) render.Node

// Dispatcher services one conversational turn at a time. It does not
// serialize turns itself; callers must not submit a new turn while a
// previous one is unresolved.
type Dispatcher struct {
	model   aisdk.ModelClient
	store   *chatstore.Store
	toolbox *Toolbox
	logger  *slog.Logger

	// RenderResult converts tool output into a node. When nil, raw tool
	// output is rendered as text.
	RenderResult ResultRenderer

	// OnDelta, when set, receives assistant text increments in arrival
	// order while the model is streaming. It is called from the turn's
	// goroutine, never concurrently.
	OnDelta func(delta string)

	// WarnTokens logs a warning when the outgoing prompt exceeds this
	// estimate. Zero disables the check.
	WarnTokens int
	counter    tokenEstimator
}

// tokenEstimator is the slice of TokenCounter the dispatcher needs.
type tokenEstimator interface {
	CountMessages(messages []*aisdk.Message) int
}

// TurnResult is the outcome of one user turn.
type TurnResult struct {
	// ChatID identifies the session, which may have been created by this
	// turn.
	ChatID string
	// Node is the renderable result: assistant text, a tool's card, or a
	// degraded error card.
	Node render.Node
	// Streamed reports that the node's content has already been delivered
	// incrementally through OnDelta. Tool results are never streamed, even
	// when they render as plain text.
	Streamed bool
}

// NewDispatcher creates a dispatcher over the given model, store, and tools.
func NewDispatcher(model aisdk.ModelClient, store *chatstore.Store, toolbox *Toolbox, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		model:   model,
		store:   store,
		toolbox: toolbox,
		logger:  logger.With("component", "dispatcher"),
	}
	if counter, err := NewTokenCounter(model.ModelID()); err == nil {
		d.counter = counter
	}
	return d
}

// Turn processes one user input against the session. The user message is
// persisted before the model is called; if the model call itself fails, the
// log keeps that user message and nothing else from this turn.
func (d *Dispatcher) Turn(ctx context.Context, principal string, chat *chatstore.Chat, text string) (*TurnResult, error) {
	if chat.OwnerID == "" {
		chat.OwnerID = principal
	}

	userMsg := &aisdk.Message{
		ID:        uuid.New().String(),
		Role:      aisdk.RoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	}
	chat.Messages = append(chat.Messages, userMsg)
	if err := d.store.Save(ctx, principal, chat); err != nil {
		return nil, fmt.Errorf("failed to persist user message: %w", err)
	}

	agg, err := d.complete(ctx, chat)
	if err != nil {
		d.logger.Error("chat completion failed", "chat_id", chat.ID, "error", err)
		return nil, err
	}

	if calls := agg.ToolCalls(); len(calls) > 0 {
		// One tool call per turn; extra calls are ignored.
		node, err := d.dispatchTool(ctx, principal, chat, calls[0])
		if err != nil {
			return nil, err
		}
		return &TurnResult{ChatID: chat.ID, Node: node}, nil
	}

	final := agg.Content.String()
	chat.Messages = append(chat.Messages, &aisdk.Message{
		ID:        uuid.New().String(),
		Role:      aisdk.RoleAssistant,
		Content:   final,
		CreatedAt: time.Now(),
	})
	if err := d.store.Save(ctx, principal, chat); err != nil {
		return nil, fmt.Errorf("failed to persist assistant message: %w", err)
	}

	return &TurnResult{
		ChatID:   chat.ID,
		Node:     render.Text{Content: final},
		Streamed: d.OnDelta != nil,
	}, nil
}

// complete streams one completion for the session's current history,
// forwarding text deltas as they arrive.
func (d *Dispatcher) complete(ctx context.Context, chat *chatstore.Chat) (*aisdk.StreamAggregator, error) {
	messages := make([]*aisdk.Message, 0, len(chat.Messages)+1)
	messages = append(messages, &aisdk.Message{
		Role:    aisdk.RoleSystem,
		Content: GenerateSystemPrompt(d.toolbox),
	})
	messages = append(messages, chat.Messages...)

	if d.counter != nil && d.WarnTokens > 0 {
		if estimate := d.counter.CountMessages(messages); estimate > d.WarnTokens {
			d.logger.Warn("prompt exceeds token estimate", "chat_id", chat.ID, "tokens", estimate, "limit", d.WarnTokens)
		}
	}

	req := &aisdk.ChatCompletionRequest{
		Model:    d.model.ModelID(),
		Messages: messages,
		Tools:    ToChatTools(d.toolbox.Tools()),
		Stream:   true,
	}

	stream, err := d.model.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	agg := aisdk.NewStreamAggregator()
	for {
		chunk, err := stream.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		agg.AddChunk(chunk)
		if d.OnDelta != nil && len(chunk.Choices) > 0 && chunk.Choices[0].Delta != nil {
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				d.OnDelta(delta)
			}
		}
	}
	return agg, nil
}

// dispatchTool commits the call/result pair to the log, then runs the tool.
// The pair is written as one save so the log never shows a call without its
// result entry. The placeholder result echoes the call arguments and is not
// patched afterwards; the rendered output is the only place the real
// outcome appears.
func (d *Dispatcher) dispatchTool(ctx context.Context, principal string, chat *chatstore.Chat, call aisdk.ToolCall) (render.Node, error) {
	name := call.Function.Name
	now := time.Now()

	chat.Messages = append(chat.Messages,
		&aisdk.Message{
			ID:        uuid.New().String(),
			Role:      aisdk.RoleAssistant,
			ToolCalls: []aisdk.ToolCall{call},
			CreatedAt: now,
		},
		&aisdk.Message{
			ID:         uuid.New().String(),
			Role:       aisdk.RoleTool,
			Name:       name,
			ToolCallID: call.ID,
			Content:    string(call.Function.Arguments),
			CreatedAt:  now,
		},
	)
	if err := d.store.Save(ctx, principal, chat); err != nil {
		return nil, fmt.Errorf("failed to persist tool call: %w", err)
	}

	response, err := d.toolbox.ExecuteTool(ctx, &call)
	if err != nil {
		// Unknown tool or executor fault. The pair is already durable;
		// the turn degrades instead of aborting.
		d.logger.Error("tool dispatch failed", "tool", name, "error", err)
		return render.ErrorNote{Message: err.Error()}, nil
	}

	if d.RenderResult != nil {
		return d.RenderResult(name, response), nil
	}
	if response.IsError {
		return render.ErrorNote{Message: string(response.Content)}, nil
	}
	return render.Text{Content: string(response.Content)}, nil
}
