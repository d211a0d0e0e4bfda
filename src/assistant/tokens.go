package assistant

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/vpittamp/graphpilot/src/aisdk"
)

// TokenCounter estimates prompt sizes so oversized histories can be flagged
// before a request is sent.
type TokenCounter struct {
	tokenizer *tiktoken.Tiktoken
}

// NewTokenCounter creates a counter for the given model's encoding.
func NewTokenCounter(model string) (*TokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Fallback to cl100k_base for unknown models
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}
	return &TokenCounter{tokenizer: enc}, nil
}

// CountText returns the token count for a string.
func (tc *TokenCounter) CountText(text string) int {
	return len(tc.tokenizer.Encode(text, nil, nil))
}

// CountMessages estimates the token count of a message history, including
// tool-call names and argument payloads.
func (tc *TokenCounter) CountMessages(messages []*aisdk.Message) int {
	total := 0
	for _, msg := range messages {
		total += tc.CountText(msg.Content)
		for _, call := range msg.ToolCalls {
			total += tc.CountText(call.Function.Name)
			total += tc.CountText(string(call.Function.Arguments))
		}
	}
	return total
}
