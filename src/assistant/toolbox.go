package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vpittamp/graphpilot/src/aisdk"
)

// Toolbox handles tool/function calling functionality.
type Toolbox struct {
	tools      map[string]Tool
	middleware []ToolMiddleware
}

// ToolMiddleware is a function that wraps a ToolExecutor to add functionality.
type ToolMiddleware func(next aisdk.ToolExecutor) aisdk.ToolExecutor

// NewToolbox creates a new tool registry.
func NewToolbox() *Toolbox {
	return &Toolbox{
		tools: make(map[string]Tool),
	}
}

// RegisterTool registers a tool.
func (tm *Toolbox) RegisterTool(tool Tool) error {
	if tool.GetName() == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := tm.tools[tool.GetName()]; exists {
		return fmt.Errorf("tool %s is already registered", tool.GetName())
	}
	tm.tools[tool.GetName()] = tool
	return nil
}

// RegisterMiddleware registers middleware that will be applied to all tool
// executions. Middleware is applied in registration order, first registered
// is the outermost layer.
func (tm *Toolbox) RegisterMiddleware(middleware ToolMiddleware) {
	tm.middleware = append(tm.middleware, middleware)
}

// Tools returns the available tools sorted by name.
func (tm *Toolbox) Tools() []Tool {
	out := make([]Tool, 0, len(tm.tools))
	for _, tool := range tm.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// GetTool returns a specific tool by name.
func (tm *Toolbox) GetTool(name string) (Tool, bool) {
	tool, exists := tm.tools[name]
	return tool, exists
}

// HasTool checks if a tool is available.
func (tm *Toolbox) HasTool(name string) bool {
	_, exists := tm.tools[name]
	return exists
}

// ExecuteTool executes a tool call with middleware applied.
func (tm *Toolbox) ExecuteTool(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	tool, exists := tm.tools[call.Function.Name]
	if !exists {
		return nil, fmt.Errorf("tool %s not found", call.Function.Name)
	}

	executor := aisdk.ToolExecutor(tool.Execute)
	for i := len(tm.middleware) - 1; i >= 0; i-- {
		executor = tm.middleware[i](executor)
	}

	return executor(ctx, call)
}

// LoggingMiddleware logs tool execution details.
func LoggingMiddleware(logger *slog.Logger) ToolMiddleware {
	return func(next aisdk.ToolExecutor) aisdk.ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			logger.Info("executing tool", "tool", call.Function.Name, "params", string(call.Function.Arguments))
			result, err := next(ctx, call)
			switch {
			case err != nil:
				logger.Info("tool execution failed", "tool", call.Function.Name, "error", err)
			case result != nil && result.IsError:
				logger.Info("tool reported an error", "tool", call.Function.Name, "detail", string(result.Content))
			default:
				logger.Info("tool execution completed", "tool", call.Function.Name)
			}
			return result, err
		}
	}
}
