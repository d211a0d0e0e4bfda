// Package tools provides barrel-style re-exports for the assistant's tool
// catalog and the mapping from tool output to render nodes.
package tools

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vpittamp/graphpilot/src/aisdk"
	"github.com/vpittamp/graphpilot/src/assistant"
	"github.com/vpittamp/graphpilot/src/assistant/tools/tool_addtasks"
	"github.com/vpittamp/graphpilot/src/assistant/tools/tool_deletetasks"
	"github.com/vpittamp/graphpilot/src/assistant/tools/tool_getweather"
	"github.com/vpittamp/graphpilot/src/assistant/tools/tool_showemails"
	"github.com/vpittamp/graphpilot/src/assistant/tools/tool_showtasks"
	"github.com/vpittamp/graphpilot/src/graph"
	"github.com/vpittamp/graphpilot/src/render"
	"github.com/vpittamp/graphpilot/src/tasklist"
)

// Tool name constants - re-exported from individual packages
const (
	GetWeatherName  = tool_getweather.Name
	ShowTasksName   = tool_showtasks.Name
	AddTasksName    = tool_addtasks.Name
	DeleteTasksName = tool_deletetasks.Name
	ShowEmailsName  = tool_showemails.Name
)

// Tool constructors re-exported as function wrappers
func GetWeatherTool(client *http.Client) (assistant.Tool, error) {
	return tool_getweather.Tool(client)
}
func ShowTasksTool(service tool_showtasks.TaskService, listID string) (assistant.Tool, error) {
	return tool_showtasks.Tool(service, listID)
}
func AddTasksTool(service tool_addtasks.TaskService, listID string) (assistant.Tool, error) {
	return tool_addtasks.Tool(service, listID)
}
func DeleteTasksTool(service tool_deletetasks.TaskService) (assistant.Tool, error) {
	return tool_deletetasks.Tool(service)
}
func ShowEmailsTool(service tool_showemails.MailService) (assistant.Tool, error) {
	return tool_showemails.Tool(service)
}

// DefaultToolbox registers the full fixed catalog against one Graph client.
// defaultListID is the task list the task tools operate on.
func DefaultToolbox(client *graph.Client, defaultListID string) (*assistant.Toolbox, error) {
	toolbox := assistant.NewToolbox()

	weather, err := GetWeatherTool(nil)
	if err != nil {
		return nil, err
	}
	showTasks, err := ShowTasksTool(client, defaultListID)
	if err != nil {
		return nil, err
	}
	addTasks, err := AddTasksTool(client, defaultListID)
	if err != nil {
		return nil, err
	}
	deleteTasks, err := DeleteTasksTool(client)
	if err != nil {
		return nil, err
	}
	showEmails, err := ShowEmailsTool(client)
	if err != nil {
		return nil, err
	}

	for _, tool := range []assistant.Tool{weather, showTasks, addTasks, deleteTasks, showEmails} {
		if err := toolbox.RegisterTool(tool); err != nil {
			return nil, err
		}
	}
	return toolbox, nil
}

// RenderNode converts a tool response into the node the CLI displays. Error
// responses become a degraded error card regardless of the tool.
func RenderNode(toolName string, response *aisdk.ToolResponse) render.Node {
	if response == nil {
		return render.ErrorNote{Message: "tool produced no response"}
	}
	if response.IsError {
		return render.ErrorNote{Message: string(response.Content)}
	}

	switch toolName {
	case GetWeatherName:
		var out tool_getweather.WeatherOutput
		if err := json.Unmarshal(response.Content, &out); err != nil {
			break
		}
		return render.Weather{
			City:        out.City,
			Temperature: int(out.Temperature),
			Unit:        out.Unit,
			Conditions:  out.Conditions,
		}

	case ShowTasksName:
		var out tool_showtasks.ShowTasksOutput
		if err := json.Unmarshal(response.Content, &out); err != nil {
			break
		}
		entries := make([]tasklist.Entry, 0, len(out.Tasks))
		for _, t := range out.Tasks {
			entries = append(entries, tasklist.Entry{
				ID: t.ID, Title: t.Title, Status: t.Status, State: tasklist.StateConfirmed,
			})
		}
		return render.TaskList{ListName: "Tasks", Entries: entries}

	case AddTasksName:
		var out tool_addtasks.AddTasksOutput
		if err := json.Unmarshal(response.Content, &out); err != nil {
			break
		}
		entries := make([]tasklist.Entry, 0, len(out.Created))
		for _, t := range out.Created {
			entries = append(entries, tasklist.Entry{
				ID: t.ID, Title: t.Title, Status: t.Status, State: tasklist.StateConfirmed,
			})
		}
		return render.TaskList{ListName: "Added tasks", Entries: entries}

	case DeleteTasksName:
		var out tool_deletetasks.DeleteTasksOutput
		if err := json.Unmarshal(response.Content, &out); err != nil {
			break
		}
		return render.Text{Content: deletedSummary(len(out.Deleted))}

	case ShowEmailsName:
		var out tool_showemails.ShowEmailsOutput
		if err := json.Unmarshal(response.Content, &out); err != nil {
			break
		}
		mails := make([]graph.Mail, 0, len(out.Mails))
		for _, m := range out.Mails {
			mails = append(mails, graph.Mail{
				ID: m.ID, Subject: m.Subject, Name: m.From, Text: m.Preview, Date: m.Received,
			})
		}
		return render.MailList{Folder: "Inbox", Mails: mails}
	}

	return render.Text{Content: string(response.Content)}
}

func deletedSummary(count int) string {
	if count == 1 {
		return "Deleted 1 task."
	}
	return fmt.Sprintf("Deleted %d tasks.", count)
}
