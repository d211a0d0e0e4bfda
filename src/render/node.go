// Package render turns assistant and tool output into terminal text. Every
// renderable result is a Node; the dispatcher hands Nodes to the CLI, which
// renders them at the current terminal width.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vpittamp/graphpilot/src/graph"
	"github.com/vpittamp/graphpilot/src/tasklist"
)

// Node is a renderable result.
type Node interface {
	Render(width int) string
}

const defaultWidth = 80

func cardStyle(width int) lipgloss.Style {
	if width <= 0 {
		width = defaultWidth
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(0, 1).
		Width(width - 2)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.TextMuted)
}

// Text is a plain assistant reply.
type Text struct {
	Content string
}

func (t Text) Render(width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return lipgloss.NewStyle().Width(width).Render(t.Content)
}

// Weather shows current conditions for one city.
type Weather struct {
	City        string
	Temperature int
	Unit        string
	Conditions  string
}

func (w Weather) Render(width int) string {
	body := fmt.Sprintf("%s\n%d%s, %s",
		titleStyle().Render(w.City), w.Temperature, w.Unit, w.Conditions)
	return cardStyle(width).Render(body)
}

// TaskList shows the entries of one To-Do list.
type TaskList struct {
	ListName string
	Entries  []tasklist.Entry
}

func (tl TaskList) Render(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle().Render(tl.ListName))
	b.WriteString("\n")
	if len(tl.Entries) == 0 {
		b.WriteString(mutedStyle().Render("no tasks"))
	}
	for i, entry := range tl.Entries {
		mark := "[ ]"
		if entry.Status == graph.StatusCompleted {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, entry.Title)
		if entry.Sending() {
			line = mutedStyle().Render(line + " …")
		}
		b.WriteString(line)
		if i < len(tl.Entries)-1 {
			b.WriteString("\n")
		}
	}
	return cardStyle(width).Render(b.String())
}

// MailList shows message summaries from one folder.
type MailList struct {
	Folder string
	Mails  []graph.Mail
}

func (ml MailList) Render(width int) string {
	var b strings.Builder
	header := ml.Folder
	if header == "" {
		header = "Inbox"
	}
	b.WriteString(titleStyle().Render(header))
	b.WriteString("\n")
	if len(ml.Mails) == 0 {
		b.WriteString(mutedStyle().Render("no messages"))
	}
	for i, mail := range ml.Mails {
		subject := mail.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		sender := mail.Name
		if sender == "" {
			sender = mail.Email
		}
		b.WriteString(fmt.Sprintf("%s  %s", subject, mutedStyle().Render(sender)))
		if mail.Text != "" {
			b.WriteString("\n  " + mutedStyle().Render(mail.Text))
		}
		if i < len(ml.Mails)-1 {
			b.WriteString("\n")
		}
	}
	return cardStyle(width).Render(b.String())
}

// ErrorNote is a degraded result shown when a tool call failed after its
// log entry was already committed.
type ErrorNote struct {
	Message string
}

func (e ErrorNote) Render(width int) string {
	style := lipgloss.NewStyle().Foreground(CurrentTheme.Danger)
	return cardStyle(width).
		BorderForeground(CurrentTheme.Danger).
		Render(style.Render(e.Message))
}
