package oaiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vpittamp/graphpilot/src/aisdk"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{Model: "gpt-4o"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req aisdk.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(aisdk.ChatCompletionResponse{
			ID: "cmpl-1",
			Choices: []aisdk.Choice{{
				Message:      aisdk.Message{Role: aisdk.RoleAssistant, Content: "hello"},
				FinishReason: "stop",
			}},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{
		Messages: []*aisdk.Message{{Role: aisdk.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "hello", resp.Choices[0].Message.Content)
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "bad", BaseURL: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, apiErr.IsAuthError())
	assert.False(t, apiErr.IsRetryable())
}

func TestCreateChatCompletionRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(aisdk.ChatCompletionResponse{
			Choices: []aisdk.Choice{{Message: aisdk.Message{Content: "ok"}}},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		APIKey:     "k",
		BaseURL:    server.URL,
		Model:      "gpt-4o",
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Choices[0].Message.Content)
	assert.Equal(t, 3, attempts)
}

func TestCreateChatCompletionStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req aisdk.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"id":"cmpl-1","choices":[{"delta":{"content":"Buy "}}]}` + "\n\n"))
		w.Write([]byte(`data: {"id":"cmpl-1","choices":[{"delta":{"content":"milk"},"finish_reason":"stop"}]}` + "\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	stream, err := client.CreateChatCompletionStream(context.Background(), &aisdk.ChatCompletionRequest{})
	require.NoError(t, err)

	resp, err := aisdk.AggregateStream(stream)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", resp.Choices[0].Message.Content)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)
}
