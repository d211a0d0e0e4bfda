package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vpittamp/graphpilot/src/assistant"
	"github.com/vpittamp/graphpilot/src/chatstore"
)

// turnRunner is the slice of the dispatcher the chat loop needs.
type turnRunner interface {
	Turn(ctx context.Context, principal string, chat *chatstore.Chat, text string) (*assistant.TurnResult, error)
}

// ChatCmd talks to the assistant, either one message at a time or as an
// interactive session. Turns are serialized here: a new input is not read
// until the previous turn has resolved.
type ChatCmd struct {
	Message   []string `arg:"" optional:"" help:"Message to send; omit for interactive mode"`
	SessionID string   `help:"Resume a saved session by id"`
}

func (c *ChatCmd) Run(kctx *CLI) error {
	app, err := newApp(kctx)
	if err != nil {
		return err
	}
	defer app.Close()

	principal, err := app.principal()
	if err != nil {
		return err
	}

	dispatcher, err := app.newDispatcher()
	if err != nil {
		return err
	}

	ctx := context.Background()
	chat := &chatstore.Chat{OwnerID: principal}
	if c.SessionID != "" {
		chat, err = app.store.Load(ctx, c.SessionID, principal)
		if err != nil {
			if errors.Is(err, chatstore.ErrNotFound) {
				return fmt.Errorf("session %s not found", c.SessionID)
			}
			return err
		}
	}

	width := terminalWidth()
	dispatcher.OnDelta = func(delta string) {
		fmt.Print(delta)
	}

	if len(c.Message) > 0 {
		return runTurn(ctx, os.Stdout, dispatcher, principal, chat, strings.Join(c.Message, " "), width)
	}

	fmt.Printf("Session %s. Empty line to exit.\n", displayID(chat))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if err := runTurn(ctx, os.Stdout, dispatcher, principal, chat, line, width); err != nil {
			fmt.Fprintf(os.Stderr, "turn failed: %v\n", err)
		}
	}
	return scanner.Err()
}

func runTurn(ctx context.Context, out io.Writer, dispatcher turnRunner, principal string, chat *chatstore.Chat, text string, width int) error {
	result, err := dispatcher.Turn(ctx, principal, chat, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	// Assistant text was already printed delta by delta; everything else,
	// including tool results that happen to render as plain text, still
	// needs rendering.
	if !result.Streamed && result.Node != nil {
		fmt.Fprintln(out, result.Node.Render(width))
	}
	return nil
}

func displayID(chat *chatstore.Chat) string {
	if chat.ID == "" {
		return "(new)"
	}
	return chat.ID
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
