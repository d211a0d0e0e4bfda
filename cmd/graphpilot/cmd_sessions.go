package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vpittamp/graphpilot/src/aisdk"
)

// SessionsCmd manages saved chat sessions.
type SessionsCmd struct {
	List   SessionsListCmd   `cmd:"" default:"1" help:"List saved sessions"`
	Show   SessionsShowCmd   `cmd:"" help:"Print a session's messages"`
	Remove SessionsRemoveCmd `cmd:"" help:"Delete a session"`
	Share  SessionsShareCmd  `cmd:"" help:"Mark a session shareable"`
	Clear  SessionsClearCmd  `cmd:"" help:"Delete all sessions"`
}

type SessionsListCmd struct{}

func (s *SessionsListCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	principal, err := app.principal()
	if err != nil {
		return err
	}

	summaries, err := app.store.ListForOwner(context.Background(), principal)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No saved sessions.")
		return nil
	}
	for _, s := range summaries {
		saved := time.UnixMilli(s.SavedAt).Format("2006-01-02 15:04")
		fmt.Printf("%s  %s  %s\n", s.ID, saved, s.Title)
	}
	return nil
}

type SessionsShowCmd struct {
	ID string `arg:"" help:"Session id"`
}

func (s *SessionsShowCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	principal, err := app.principal()
	if err != nil {
		return err
	}

	chat, err := app.store.Load(context.Background(), s.ID, principal)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n\n", chat.ID, chat.Title)
	for _, msg := range chat.Messages {
		switch msg.Role {
		case aisdk.RoleTool:
			fmt.Printf("[tool %s] %s\n", msg.Name, msg.Content)
		case aisdk.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				call := msg.ToolCalls[0]
				fmt.Printf("[assistant calls %s] %s\n", call.Function.Name, string(call.Function.Arguments))
				continue
			}
			fmt.Printf("[assistant] %s\n", msg.Content)
		default:
			fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
		}
	}
	return nil
}

type SessionsRemoveCmd struct {
	ID string `arg:"" help:"Session id"`
}

func (s *SessionsRemoveCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	principal, err := app.principal()
	if err != nil {
		return err
	}
	if err := app.store.Remove(context.Background(), principal, s.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", s.ID)
	return nil
}

type SessionsShareCmd struct {
	ID string `arg:"" help:"Session id"`
}

func (s *SessionsShareCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	principal, err := app.principal()
	if err != nil {
		return err
	}
	chat, err := app.store.Share(context.Background(), principal, s.ID)
	if err != nil {
		return err
	}
	fmt.Println(chat.SharePath)
	return nil
}

type SessionsClearCmd struct{}

func (s *SessionsClearCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	principal, err := app.principal()
	if err != nil {
		return err
	}
	if err := app.store.Clear(context.Background(), principal); err != nil {
		return err
	}
	fmt.Println("Cleared all sessions.")
	return nil
}
