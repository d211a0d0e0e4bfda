package tool_deletetasks

import (
	"context"

	"github.com/vpittamp/graphpilot/src/assistant"
)

// Tool name constant
const Name = "delete_tasks"

const deleteTasksPrompt = `Delete tasks from a specified task list.

WHEN TO USE THIS TOOL:
- Use when the user asks to remove tasks from their to-do list

HOW TO USE:
- Provide the ID of the task list containing the tasks
- Provide the IDs of the tasks to delete

FEATURES:
- Multiple tasks are deleted in a single batched request`

// TaskService is the slice of the task API this tool needs.
type TaskService interface {
	DeleteTasks(ctx context.Context, listID string, ids []string) error
}

// DeleteTasksInput represents the parameters for delete_tasks
type DeleteTasksInput struct {
	ListID  string   `json:"list_id" required:"true" description:"The ID of the task list containing the tasks to delete."`
	TaskIDs []string `json:"task_ids" required:"true" description:"The IDs of the tasks to delete."`
}

// DeleteTasksOutput represents the response from delete_tasks
type DeleteTasksOutput struct {
	ListID  string   `json:"list_id" description:"The task list the tasks were deleted from"`
	Deleted []string `json:"deleted" description:"The IDs of the deleted tasks"`
}

// Tool returns the delete_tasks tool definition using GenericTool
func Tool(service TaskService) (assistant.Tool, error) {
	return assistant.NewGenericTool(Name, deleteTasksPrompt,
		func(ctx context.Context, input DeleteTasksInput) (DeleteTasksOutput, error) {
			if err := service.DeleteTasks(ctx, input.ListID, input.TaskIDs); err != nil {
				return DeleteTasksOutput{}, err
			}
			return DeleteTasksOutput{ListID: input.ListID, Deleted: input.TaskIDs}, nil
		})
}
