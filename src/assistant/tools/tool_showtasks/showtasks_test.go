package tool_showtasks

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
	tasks []graph.TodoTask
}

func (f *fakeService) ListTasks(_ context.Context, _ string, _ []string) ([]graph.TodoTask, error) {
	return f.tasks, nil
}

func execute(t *testing.T, service TaskService, args string) ShowTasksOutput {
	t.Helper()
	tool, err := Tool(service, "list-1")
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(args)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))

	var out ShowTasksOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	return out
}

func TestShowTasksDefaultCount(t *testing.T) {
	service := &fakeService{}
	for i := 0; i < 8; i++ {
		service.tasks = append(service.tasks, graph.TodoTask{
			ID: string(rune('a' + i)), Title: "task", Status: graph.StatusNotStarted,
		})
	}

	out := execute(t, service, `{}`)
	assert.Equal(t, "list-1", out.ListID)
	// Default count is 5.
	assert.Len(t, out.Tasks, 5)
}

func TestShowTasksExplicitCount(t *testing.T) {
	service := &fakeService{tasks: []graph.TodoTask{
		{ID: "t1", Title: "First", Status: graph.StatusNotStarted},
		{ID: "t2", Title: "Second", Status: graph.StatusCompleted},
	}}

	out := execute(t, service, `{"count":1}`)
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "t1", out.Tasks[0].ID)
}
