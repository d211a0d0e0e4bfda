package tool_showemails

import (
	"context"

	"github.com/vpittamp/graphpilot/src/assistant"
	"github.com/vpittamp/graphpilot/src/graph"
)

// Tool name constant
const Name = "show_emails"

const showEmailsPrompt = `Display the user's email.

WHEN TO USE THIS TOOL:
- Use when the user asks to see their recent email messages

HOW TO USE:
- Optionally provide the number of messages to display (default 100)`

// MailService is the slice of the mail API this tool needs.
type MailService interface {
	ListMessages(ctx context.Context, top int) ([]graph.Mail, error)
}

// ShowEmailsInput represents the parameters for show_emails
type ShowEmailsInput struct {
	Count int `json:"count,omitempty" default:"100" description:"The number of emails to display."`
}

// ShowEmailsOutput represents the response from show_emails
type ShowEmailsOutput struct {
	Mails []Mail `json:"mails" description:"The email messages"`
}

// Mail is one message summary in the output.
type Mail struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	Preview  string `json:"preview"`
	Received string `json:"received"`
}

// Tool returns the show_emails tool definition using GenericTool
func Tool(service MailService) (assistant.Tool, error) {
	return assistant.NewGenericTool(Name, showEmailsPrompt,
		func(ctx context.Context, input ShowEmailsInput) (ShowEmailsOutput, error) {
			count := input.Count
			if count <= 0 {
				count = 100
			}

			mails, err := service.ListMessages(ctx, count)
			if err != nil {
				return ShowEmailsOutput{}, err
			}

			out := ShowEmailsOutput{Mails: make([]Mail, 0, len(mails))}
			for _, m := range mails {
				from := m.Email
				if m.Name != "" {
					from = m.Name
				}
				out.Mails = append(out.Mails, Mail{
					ID:       m.ID,
					Subject:  m.Subject,
					From:     from,
					Preview:  m.Text,
					Received: m.Date,
				})
			}
			return out, nil
		})
}
