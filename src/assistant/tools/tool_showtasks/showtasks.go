package tool_showtasks

import (
	"context"

	"github.com/vpittamp/graphpilot/src/assistant"
	"github.com/vpittamp/graphpilot/src/graph"
)

// Tool name constant
const Name = "show_tasks"

const showTasksPrompt = `Display the user tasks.

WHEN TO USE THIS TOOL:
- Use when the user asks to see their tasks or to-do items

HOW TO USE:
- Optionally provide the number of tasks to display (default 5)`

// TaskService is the slice of the task API this tool needs.
type TaskService interface {
	ListTasks(ctx context.Context, listID string, ids []string) ([]graph.TodoTask, error)
}

// ShowTasksInput represents the parameters for show_tasks
type ShowTasksInput struct {
	Count int `json:"count,omitempty" default:"5" description:"The number of tasks to display."`
}

// ShowTasksOutput represents the response from show_tasks
type ShowTasksOutput struct {
	ListID string `json:"list_id" description:"The task list the tasks came from"`
	Tasks  []Task `json:"tasks" description:"The tasks in the list"`
}

// Task is one task in the output.
type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Tool returns the show_tasks tool definition using GenericTool
func Tool(service TaskService, listID string) (assistant.Tool, error) {
	return assistant.NewGenericTool(Name, showTasksPrompt,
		func(ctx context.Context, input ShowTasksInput) (ShowTasksOutput, error) {
			count := input.Count
			if count <= 0 {
				count = 5
			}

			tasks, err := service.ListTasks(ctx, listID, nil)
			if err != nil {
				return ShowTasksOutput{}, err
			}
			if len(tasks) > count {
				tasks = tasks[:count]
			}

			out := ShowTasksOutput{ListID: listID, Tasks: make([]Task, 0, len(tasks))}
			for _, t := range tasks {
				out.Tasks = append(out.Tasks, Task{ID: t.ID, Title: t.Title, Status: t.Status})
			}
			return out, nil
		})
}
