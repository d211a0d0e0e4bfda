package assistant

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	jsonschema "github.com/swaggest/jsonschema-go"
)

const mainPromptTemplate = `You are an intelligent assistant designed to help users manage their Microsoft ToDo tasks efficiently. You will interact with the Microsoft Graph API to perform various task management operations. Your primary functions include:

Get Task Lists: Retrieve and display the user's task lists.
Get Tasks: Retrieve and display tasks from a specific task list.
Add Tasks: Add new tasks.
Delete Tasks: Remove tasks from a specified task list.
Show Email: Retrieve and display the user's email.
When interacting with users, ensure to:

Confirm the action they want to perform.
Request necessary details (e.g., task list name, task details).
Provide clear feedback on the success or failure of each operation.
Handle errors gracefully and provide helpful troubleshooting information.
Your responses should be clear, concise, and focused on task management. Always prioritize the user's productivity and efficiency.

Besides that, you can also chat with users about the weather.`

// getEnvironmentInfo generates dynamic environment information
func getEnvironmentInfo() string {
	today := time.Now().Format("2006-01-02")
	osVersion := getOSVersion()

	return fmt.Sprintf(`Here is useful information about the environment you are running in:
<env>
Platform: %s
OS Version: %s
Today's date: %s
</env>`, runtime.GOOS, osVersion, today)
}

// getOSVersion returns detailed OS version information
func getOSVersion() string {
	info, err := host.Info()
	if err == nil {
		if info.PlatformVersion != "" {
			return fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		}
		return info.Platform
	}
	return runtime.GOOS
}

// formatSchemaForPrompt renders a parameter schema as "name: type # description"
// lines for the prompt.
func formatSchemaForPrompt(schema *jsonschema.Schema, indentLevel int) string {
	if schema == nil {
		return "unknown"
	}

	indent := strings.Repeat("  ", indentLevel)
	parts := []string{}

	if len(schema.Required) > 0 {
		parts = append(parts, fmt.Sprintf("%sobject (required: %s)", indent, strings.Join(schema.Required, ", ")))
	} else {
		parts = append(parts, indent+"object")
	}

	propNames := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)

	for _, propName := range propNames {
		propSchemaOrBool := schema.Properties[propName]
		if propSchemaOrBool.TypeObject == nil {
			continue
		}
		propSchema := propSchemaOrBool.TypeObject

		propType := "object"
		if propSchema.Type != nil {
			if propSchema.Type.SimpleTypes != nil {
				propType = string(*propSchema.Type.SimpleTypes)
			} else if len(propSchema.Type.SliceOfSimpleTypeValues) > 0 {
				propType = string(propSchema.Type.SliceOfSimpleTypeValues[0])
			}
		}

		line := fmt.Sprintf("%s  %s: %s", indent, propName, propType)
		if propSchema.Description != nil && *propSchema.Description != "" {
			line += fmt.Sprintf(" # %s", *propSchema.Description)
		}
		parts = append(parts, line)
	}

	return strings.Join(parts, "\n")
}

// formatToolsForPrompt formats tools for display in the prompt
func formatToolsForPrompt(toolbox *Toolbox) string {
	if toolbox == nil {
		return "No tools available."
	}

	tools := toolbox.Tools()
	if len(tools) == 0 {
		return "No tools available."
	}

	toolStrings := []string{}
	for _, tool := range tools {
		parts := []string{
			fmt.Sprintf("Tool: %s", tool.GetName()),
			fmt.Sprintf("Description: %s", tool.GetDescription()),
			"Input Schema:",
		}

		if tool.GetParameters() != nil {
			parts = append(parts, formatSchemaForPrompt(tool.GetParameters(), 1))
		} else {
			parts = append(parts, "  # No schema defined")
		}

		toolStrings = append(toolStrings, strings.Join(parts, "\n"))
	}

	return fmt.Sprintf("You have access to the following tools:\n\n%s", strings.Join(toolStrings, "\n\n---\n\n"))
}

// GenerateSystemPrompt assembles all sections into the final system prompt
func GenerateSystemPrompt(toolbox *Toolbox) string {
	sections := []string{
		mainPromptTemplate,
		getEnvironmentInfo(),
		formatToolsForPrompt(toolbox),
	}
	return strings.Join(sections, "\n\n")
}
