package main

import (
	"context"
	"fmt"

	"github.com/vpittamp/graphpilot/src/render"
	"github.com/vpittamp/graphpilot/src/tasklist"
)

// TasksCmd manages To-Do tasks without going through the assistant.
type TasksCmd struct {
	Lists  TasksListsCmd  `cmd:"" help:"Show the available task lists"`
	List   TasksListCmd   `cmd:"" default:"1" help:"Show tasks in a list"`
	Add    TasksAddCmd    `cmd:"" help:"Add tasks to a list"`
	Remove TasksRemoveCmd `cmd:"" help:"Remove tasks from a list"`
}

type TasksListsCmd struct{}

func (t *TasksListsCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	lists, err := app.graph.ListTaskLists(context.Background())
	if err != nil {
		return err
	}
	for _, list := range lists {
		fmt.Printf("%s  %s\n", list.ID, list.DisplayName)
	}
	return nil
}

type TasksListCmd struct {
	ListID string `help:"Task list id; defaults to the configured list"`
}

func (t *TasksListCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	listID, err := resolveListID(app, t.ListID)
	if err != nil {
		return err
	}

	tasks, err := app.graph.ListTasks(context.Background(), listID, nil)
	if err != nil {
		return err
	}

	list := tasklist.New(app.graph, listID, app.logger)
	list.Load(tasks)
	fmt.Println(render.TaskList{ListName: listID, Entries: list.Snapshot()}.Render(terminalWidth()))
	return nil
}

// TasksAddCmd adds tasks through the optimistic container: entries are
// visible immediately and reconciled against the service before exit.
type TasksAddCmd struct {
	Titles []string `arg:"" help:"Titles of the tasks to add"`
	ListID string   `help:"Task list id; defaults to the configured list"`
}

func (t *TasksAddCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	listID, err := resolveListID(app, t.ListID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	list := tasklist.New(app.graph, listID, app.logger)
	list.OnError = func(err error) {
		fmt.Printf("task not added: %v\n", err)
	}

	accepted := 0
	for _, title := range t.Titles {
		if list.Submit(ctx, title) {
			accepted++
		}
	}
	list.Wait()

	fmt.Printf("Added %d of %d tasks.\n", len(list.Snapshot()), accepted)
	return nil
}

type TasksRemoveCmd struct {
	TaskIDs []string `arg:"" help:"IDs of the tasks to remove"`
	ListID  string   `help:"Task list id; defaults to the configured list"`
}

func (t *TasksRemoveCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	listID, err := resolveListID(app, t.ListID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tasks, err := app.graph.ListTasks(ctx, listID, nil)
	if err != nil {
		return err
	}

	list := tasklist.New(app.graph, listID, app.logger)
	list.Load(tasks)
	list.OnError = func(err error) {
		fmt.Printf("task not removed: %v\n", err)
	}

	for _, id := range t.TaskIDs {
		list.Remove(ctx, id)
	}
	list.Wait()

	fmt.Printf("%d tasks remain.\n", len(list.Snapshot()))
	return nil
}

func resolveListID(app *app, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if app.config.Graph.DefaultListID != "" {
		return app.config.Graph.DefaultListID, nil
	}
	return "", fmt.Errorf("no task list configured; pass --list-id or set GRAPH_DEFAULT_LIST_ID")
}
