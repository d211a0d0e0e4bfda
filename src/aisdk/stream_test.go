package aisdk

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	chunks []*StreamChunk
	pos    int
	closed bool
}

func (f *fakeStream) Read() (*StreamChunk, error) {
	if f.pos >= len(f.chunks) {
		return nil, io.EOF
	}
	c := f.chunks[f.pos]
	f.pos++
	return c, nil
}

func (f *fakeStream) Close() error {
	f.closed = true
	return nil
}

func textChunk(delta string) *StreamChunk {
	return &StreamChunk{
		Choices: []Choice{{Delta: &Message{Role: RoleAssistant, Content: delta}}},
	}
}

func TestTextDeltasOrderAndFinalization(t *testing.T) {
	stream := &fakeStream{chunks: []*StreamChunk{
		textChunk("Hel"),
		textChunk("lo"),
		textChunk(" world"),
	}}

	deltas, errc := TextDeltas(stream)

	var got []string
	for d := range deltas {
		got = append(got, d)
	}
	require.NoError(t, <-errc)

	assert.Equal(t, []string{"Hel", "lo", " world"}, got)
	assert.True(t, stream.closed)
}

func TestAggregateStreamText(t *testing.T) {
	stream := &fakeStream{chunks: []*StreamChunk{
		{ID: "cmpl-1", Model: "gpt-4o", Choices: []Choice{{Delta: &Message{Content: "task "}}}},
		{Choices: []Choice{{Delta: &Message{Content: "added"}, FinishReason: "stop"}}},
	}}

	resp, err := AggregateStream(stream)
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)

	assert.Equal(t, "cmpl-1", resp.ID)
	assert.Equal(t, "task added", resp.Choices[0].Message.Content)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)
	assert.Empty(t, resp.Choices[0].Message.ToolCalls)
}

func TestAggregateStreamToolCallFragments(t *testing.T) {
	stream := &fakeStream{chunks: []*StreamChunk{
		{Choices: []Choice{{Delta: &Message{ToolCalls: []ToolCall{{
			Index: 0, ID: "call_1", Type: "function",
			Function: FunctionCall{Name: "add_tasks", Arguments: []byte(`{"titles":`)},
		}}}}}},
		{Choices: []Choice{{Delta: &Message{ToolCalls: []ToolCall{{
			Index:    0,
			Function: FunctionCall{Arguments: []byte(`["Buy milk"]}`)},
		}}}}}},
		{Choices: []Choice{{FinishReason: "tool_calls"}}},
	}}

	resp, err := AggregateStream(stream)
	require.NoError(t, err)

	calls := resp.Choices[0].Message.ToolCalls
	require.Len(t, calls, 1)
	assert.Equal(t, "call_1", calls[0].ID)
	assert.Equal(t, "add_tasks", calls[0].Function.Name)
	assert.JSONEq(t, `{"titles":["Buy milk"]}`, string(calls[0].Function.Arguments))
	assert.Equal(t, "tool_calls", resp.Choices[0].FinishReason)
}
