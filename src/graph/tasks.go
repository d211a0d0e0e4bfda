package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
)

// ListTaskLists retrieves the user's To Do task lists.
func (c *Client) ListTaskLists(ctx context.Context) ([]TodoTaskList, error) {
	var out valueEnvelope[TodoTaskList]
	if err := c.do(ctx, http.MethodGet, "/me/todo/lists", nil, &out); err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	return out.Value, nil
}

// ListTasks retrieves the tasks in a list. When ids is non-empty the result
// is filtered to those task ids.
func (c *Client) ListTasks(ctx context.Context, listID string, ids []string) ([]TodoTask, error) {
	path := fmt.Sprintf("/me/todo/lists/%s/tasks", url.PathEscape(listID))

	var out valueEnvelope[TodoTask]
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := out.Value
	if len(ids) > 0 {
		filtered := tasks[:0]
		for _, task := range tasks {
			if slices.Contains(ids, task.ID) {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}
	return tasks, nil
}

// AddTasks creates tasks with the given titles. A single title issues one
// POST; multiple titles go through a /$batch request, and only sub-responses
// that report 201 Created are returned.
func (c *Client) AddTasks(ctx context.Context, listID string, titles []string) ([]TodoTask, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	path := fmt.Sprintf("/me/todo/lists/%s/tasks", url.PathEscape(listID))

	if len(titles) == 1 {
		var created TodoTask
		if err := c.do(ctx, http.MethodPost, path, TodoTask{Title: titles[0]}, &created); err != nil {
			return nil, fmt.Errorf("add task: %w", err)
		}
		return []TodoTask{created}, nil
	}

	steps := make([]batchStep, len(titles))
	for i, title := range titles {
		steps[i] = batchStep{
			ID:      strconv.Itoa(i),
			Method:  http.MethodPost,
			URL:     path,
			Headers: jsonContentType,
			Body:    TodoTask{Title: title},
		}
	}

	responses, err := c.batch(ctx, steps)
	if err != nil {
		return nil, fmt.Errorf("add tasks batch: %w", err)
	}

	added := make([]TodoTask, 0, len(responses))
	for _, resp := range responses {
		if resp.Status != http.StatusCreated {
			c.logger.Warn("batch create step failed", "step", resp.ID, "status", resp.Status)
			continue
		}
		var task TodoTask
		if err := json.Unmarshal(resp.Body, &task); err != nil {
			return nil, fmt.Errorf("decode batch create step %s: %w", resp.ID, err)
		}
		added = append(added, task)
	}
	return added, nil
}

// DeleteTasks removes tasks by id. A single id issues one DELETE; multiple
// ids go through a /$batch request.
func (c *Client) DeleteTasks(ctx context.Context, listID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	if len(ids) == 1 {
		path := fmt.Sprintf("/me/todo/lists/%s/tasks/%s", url.PathEscape(listID), url.PathEscape(ids[0]))
		if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	}

	steps := make([]batchStep, len(ids))
	for i, id := range ids {
		steps[i] = batchStep{
			ID:     strconv.Itoa(i),
			Method: http.MethodDelete,
			URL:    fmt.Sprintf("/me/todo/lists/%s/tasks/%s", url.PathEscape(listID), url.PathEscape(id)),
		}
	}

	responses, err := c.batch(ctx, steps)
	if err != nil {
		return fmt.Errorf("delete tasks batch: %w", err)
	}
	for _, resp := range responses {
		if resp.Status >= 400 {
			return &GraphError{
				StatusCode: resp.Status,
				Message:    fmt.Sprintf("batch delete step %s failed", resp.ID),
			}
		}
	}
	return nil
}
