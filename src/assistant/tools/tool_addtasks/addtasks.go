package tool_addtasks

import (
	"context"

	"github.com/vpittamp/graphpilot/src/assistant"
	"github.com/vpittamp/graphpilot/src/graph"
)

// Tool name constant
const Name = "add_tasks"

const addTasksPrompt = `Add new tasks.

WHEN TO USE THIS TOOL:
- Use when the user asks to add one or more tasks to their to-do list

HOW TO USE:
- Provide the titles of the tasks to add

FEATURES:
- Multiple tasks are created in a single batched request`

// TaskService is the slice of the task API this tool needs.
type TaskService interface {
	AddTasks(ctx context.Context, listID string, titles []string) ([]graph.TodoTask, error)
}

// AddTasksInput represents the parameters for add_tasks
type AddTasksInput struct {
	Titles []string `json:"titles" required:"true" description:"The titles of the tasks."`
}

// AddTasksOutput represents the response from add_tasks
type AddTasksOutput struct {
	ListID  string `json:"list_id" description:"The task list the tasks were added to"`
	Created []Task `json:"created" description:"The tasks that were created"`
}

// Task is one created task in the output.
type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Tool returns the add_tasks tool definition using GenericTool
func Tool(service TaskService, listID string) (assistant.Tool, error) {
	return assistant.NewGenericTool(Name, addTasksPrompt,
		func(ctx context.Context, input AddTasksInput) (AddTasksOutput, error) {
			created, err := service.AddTasks(ctx, listID, input.Titles)
			if err != nil {
				return AddTasksOutput{}, err
			}

			out := AddTasksOutput{ListID: listID, Created: make([]Task, 0, len(created))}
			for _, t := range created {
				out.Created = append(out.Created, Task{ID: t.ID, Title: t.Title, Status: t.Status})
			}
			return out, nil
		})
}
