package tool_addtasks

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpittamp/graphpilot/src/aisdk"
	"github.com/vpittamp/graphpilot/src/graph"
)

type fakeService struct {
	calls [][]string
}

func (f *fakeService) AddTasks(_ context.Context, _ string, titles []string) ([]graph.TodoTask, error) {
	f.calls = append(f.calls, titles)
	out := make([]graph.TodoTask, 0, len(titles))
	for i, title := range titles {
		out = append(out, graph.TodoTask{
			ID: "srv-" + string(rune('0'+i)), Title: title, Status: graph.StatusNotStarted,
		})
	}
	return out, nil
}

func TestAddTasks(t *testing.T) {
	service := &fakeService{}
	tool, err := Tool(service, "list-1")
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(`{"titles":["Buy milk","Buy eggs"]}`)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))

	var out AddTasksOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	require.Len(t, out.Created, 2)
	assert.Equal(t, "Buy milk", out.Created[0].Title)

	// Both titles go out in one batched call.
	require.Len(t, service.calls, 1)
	assert.Equal(t, []string{"Buy milk", "Buy eggs"}, service.calls[0])
}

func TestAddTasksRequiresTitles(t *testing.T) {
	service := &fakeService{}
	tool, err := Tool(service, "list-1")
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(`{}`)},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	// Validation failures never reach the service.
	assert.Empty(t, service.calls)
}
