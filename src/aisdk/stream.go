package aisdk

import (
	"errors"
	"io"
	"sort"
	"strings"
)

// StreamCallback is a function called for each chunk in a stream.
type StreamCallback func(chunk *StreamChunk) error

// StreamToCallback reads a stream and calls the callback for each chunk.
func StreamToCallback(stream StreamInterface, callback StreamCallback) error {
	defer stream.Close()

	for {
		chunk, err := stream.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if chunk == nil {
			return nil
		}

		if err := callback(chunk); err != nil {
			return err
		}
	}
}

// TextDeltas converts a stream into a channel of text increments. Increments
// arrive in order and the channel is closed exactly once when the stream
// finishes; that close is the finalization signal. A read error is delivered
// on the error channel before both channels close.
func TextDeltas(stream StreamInterface) (<-chan string, <-chan error) {
	deltas := make(chan string, 16)
	errc := make(chan error, 1)

	go func() {
		defer close(deltas)
		defer close(errc)

		err := StreamToCallback(stream, func(chunk *StreamChunk) error {
			if len(chunk.Choices) > 0 && chunk.Choices[0].Delta != nil {
				if d := chunk.Choices[0].Delta.Content; d != "" {
					deltas <- d
				}
			}
			return nil
		})
		if err != nil {
			errc <- err
		}
	}()

	return deltas, errc
}

// StreamAggregator folds stream chunks into a final response. Unlike plain
// text accumulation it also reassembles tool calls, whose name and argument
// JSON arrive fragmented across chunks keyed by tool-call index.
type StreamAggregator struct {
	ID      string
	Object  string
	Created int64
	Model   string
	Content strings.Builder

	FinishReason string
	Usage        *Usage

	toolCalls map[int]*toolCallAccum
}

type toolCallAccum struct {
	id   string
	name string
	args strings.Builder
}

// NewStreamAggregator creates a new stream aggregator.
func NewStreamAggregator() *StreamAggregator {
	return &StreamAggregator{
		Object:    "chat.completion",
		toolCalls: make(map[int]*toolCallAccum),
	}
}

// AddChunk processes a stream chunk and updates the aggregated state.
func (a *StreamAggregator) AddChunk(chunk *StreamChunk) {
	if a.ID == "" {
		a.ID = chunk.ID
	}
	if a.Created == 0 {
		a.Created = chunk.Created
	}
	if a.Model == "" {
		a.Model = chunk.Model
	}

	if len(chunk.Choices) == 0 {
		return
	}
	choice := chunk.Choices[0]

	if choice.Delta != nil {
		if choice.Delta.Content != "" {
			a.Content.WriteString(choice.Delta.Content)
		}
		for _, tc := range choice.Delta.ToolCalls {
			accum, ok := a.toolCalls[tc.Index]
			if !ok {
				accum = &toolCallAccum{}
				a.toolCalls[tc.Index] = accum
			}
			if tc.ID != "" {
				accum.id = tc.ID
			}
			if tc.Function.Name != "" {
				accum.name = tc.Function.Name
			}
			accum.args.Write(tc.Function.Arguments)
		}
	}

	if choice.FinishReason != "" {
		a.FinishReason = choice.FinishReason
	}
}

// ToolCalls returns the reassembled tool calls in index order.
func (a *StreamAggregator) ToolCalls() []ToolCall {
	if len(a.toolCalls) == 0 {
		return nil
	}
	indices := make([]int, 0, len(a.toolCalls))
	for i := range a.toolCalls {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	calls := make([]ToolCall, 0, len(indices))
	for _, i := range indices {
		accum := a.toolCalls[i]
		calls = append(calls, ToolCall{
			ID:   accum.id,
			Type: "function",
			Function: FunctionCall{
				Name:      accum.name,
				Arguments: []byte(accum.args.String()),
			},
		})
	}
	return calls
}

// ToResponse converts the aggregated stream into a ChatCompletionResponse.
func (a *StreamAggregator) ToResponse() *ChatCompletionResponse {
	response := &ChatCompletionResponse{
		ID:      a.ID,
		Object:  a.Object,
		Created: a.Created,
		Model:   a.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: Message{
					Role:      RoleAssistant,
					Content:   a.Content.String(),
					ToolCalls: a.ToolCalls(),
				},
				FinishReason: a.FinishReason,
			},
		},
	}

	if a.Usage != nil {
		response.Usage = *a.Usage
	}

	return response
}

// AggregateStream reads a stream to completion and returns the aggregated
// response.
func AggregateStream(stream StreamInterface) (*ChatCompletionResponse, error) {
	aggregator := NewStreamAggregator()

	err := StreamToCallback(stream, func(chunk *StreamChunk) error {
		aggregator.AddChunk(chunk)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return aggregator.ToResponse(), nil
}
