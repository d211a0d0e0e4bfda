package main

import (
	"context"
	"fmt"

	"github.com/vpittamp/graphpilot/src/graph"
	"github.com/vpittamp/graphpilot/src/render"
)

// MailCmd reads and sends mail without going through the assistant.
type MailCmd struct {
	Folders   MailFoldersCmd   `cmd:"" help:"List mail folders"`
	List      MailListCmd      `cmd:"" default:"1" help:"List messages in a folder"`
	Read      MailReadCmd      `cmd:"" help:"Print one message"`
	Send      MailSendCmd      `cmd:"" help:"Send a plain-text message"`
	Move      MailMoveCmd      `cmd:"" help:"Move a message to another folder"`
	Delete    MailDeleteCmd    `cmd:"" help:"Move a message to Deleted Items"`
	Addresses MailAddressesCmd `cmd:"" help:"List directory addresses"`
}

type MailFoldersCmd struct{}

func (m *MailFoldersCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	folders, err := app.graph.ListFolders(context.Background())
	if err != nil {
		return err
	}
	for _, folder := range folders {
		fmt.Printf("%-20s %d items, %d unread\n", folder.DisplayName, folder.TotalItemCount, folder.UnreadItemCount)
	}
	return nil
}

type MailListCmd struct {
	Folder string `arg:"" optional:"" help:"Folder name; defaults to Inbox"`
	Top    int    `default:"25" help:"Maximum number of messages"`
}

func (m *MailListCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	var mails []graph.Mail
	if m.Folder == "" {
		mails, err = app.graph.ListMessages(ctx, m.Top)
	} else {
		mails, err = app.graph.ListFolderMessages(ctx, m.Folder, m.Top)
	}
	if err != nil {
		return err
	}

	folder := m.Folder
	if folder == "" {
		folder = "Inbox"
	}
	fmt.Println(render.MailList{Folder: folder, Mails: mails}.Render(terminalWidth()))
	return nil
}

type MailReadCmd struct {
	ID     string `arg:"" help:"Message id"`
	Folder string `default:"Inbox" help:"Folder containing the message"`
}

func (m *MailReadCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	msg, err := app.graph.GetMessage(context.Background(), m.Folder, m.ID)
	if err != nil {
		return err
	}

	from := ""
	if msg.From != nil {
		from = msg.From.EmailAddress.Address
	}
	fmt.Printf("From: %s\nSubject: %s\nReceived: %s\n\n", from, msg.Subject, msg.ReceivedDateTime)
	if msg.Body != nil {
		fmt.Println(render.MailBody(msg.Body.ContentType, msg.Body.Content))
	}
	return nil
}

type MailSendCmd struct {
	To      string `required:"" help:"Recipient address"`
	Subject string `required:"" help:"Message subject"`
	Body    string `required:"" help:"Message body"`
}

func (m *MailSendCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	err = app.graph.SendMail(ctx, graph.SendMailInput{
		To:      m.To,
		Subject: m.Subject,
		Body:    m.Body,
	})
	if err != nil {
		return err
	}

	// The send endpoint returns no message id; the newest entry in Sent
	// Items confirms delivery.
	id, err := app.graph.LatestSentMessageID(ctx)
	if err != nil || id == "" {
		fmt.Println("Sent.")
		return nil
	}
	fmt.Printf("Sent as %s\n", id)
	return nil
}

type MailMoveCmd struct {
	ID          string `arg:"" help:"Message id"`
	Destination string `arg:"" help:"Destination folder"`
	Folder      string `default:"Inbox" help:"Folder containing the message"`
}

func (m *MailMoveCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.graph.MoveMessage(context.Background(), m.Folder, m.ID, m.Destination); err != nil {
		return err
	}
	fmt.Println("Moved.")
	return nil
}

type MailDeleteCmd struct {
	ID     string `arg:"" help:"Message id"`
	Folder string `default:"Inbox" help:"Folder containing the message"`
}

func (m *MailDeleteCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.graph.DeleteMessage(context.Background(), m.Folder, m.ID); err != nil {
		return err
	}
	fmt.Println("Moved to Deleted Items.")
	return nil
}

// MailAddressesCmd prints the directory's address book.
type MailAddressesCmd struct{}

func (m *MailAddressesCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}
	defer app.Close()

	users, err := app.graph.ListUsers(context.Background())
	if err != nil {
		return err
	}
	for _, user := range users {
		if user.Mail == "" {
			continue
		}
		fmt.Printf("%-30s %s %s\n", user.Mail, user.GivenName, user.Surname)
	}
	return nil
}
