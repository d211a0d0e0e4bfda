package tool_deletetasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpittamp/graphpilot/src/aisdk"
)

type fakeService struct {
	err   error
	calls [][]string
}

func (f *fakeService) DeleteTasks(_ context.Context, _ string, ids []string) error {
	f.calls = append(f.calls, ids)
	return f.err
}

func TestDeleteTasks(t *testing.T) {
	service := &fakeService{}
	tool, err := Tool(service)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(`{"list_id":"list-1","task_ids":["t1","t2"]}`)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))
	require.Len(t, service.calls, 1)
	assert.Equal(t, []string{"t1", "t2"}, service.calls[0])
}

func TestDeleteTasksRequiresListID(t *testing.T) {
	service := &fakeService{}
	tool, err := Tool(service)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(`{"task_ids":["t1"]}`)},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Empty(t, service.calls)
}

func TestDeleteTasksServiceError(t *testing.T) {
	service := &fakeService{err: errors.New("upstream down")}
	tool, err := Tool(service)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(`{"list_id":"list-1","task_ids":["t1"]}`)},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "upstream down")
}
