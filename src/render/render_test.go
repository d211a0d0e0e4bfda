package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpittamp/graphpilot/src/graph"
	"github.com/vpittamp/graphpilot/src/tasklist"
)

func TestTaskListRender(t *testing.T) {
	node := TaskList{
		ListName: "Groceries",
		Entries: []tasklist.Entry{
			{ID: "t1", Title: "Buy milk", Status: graph.StatusNotStarted, State: tasklist.StateConfirmed},
			{ID: "t2", Title: "Buy eggs", Status: graph.StatusCompleted, State: tasklist.StateConfirmed},
			{ID: "local-1", Title: "Buy bread", Status: graph.StatusNotStarted, State: tasklist.StatePending},
		},
	}

	out := node.Render(60)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "[ ] Buy milk")
	assert.Contains(t, out, "[x] Buy eggs")
	assert.Contains(t, out, "Buy bread")
}

func TestTaskListRenderEmpty(t *testing.T) {
	out := TaskList{ListName: "Groceries"}.Render(60)
	assert.Contains(t, out, "no tasks")
}

func TestMailListRender(t *testing.T) {
	node := MailList{
		Folder: "Inbox",
		Mails: []graph.Mail{
			{ID: "m1", Subject: "Quarterly review", Email: "boss@example.com", Text: "Please read"},
			{ID: "m2", Email: "noreply@example.com"},
		},
	}

	out := node.Render(60)
	assert.Contains(t, out, "Quarterly review")
	assert.Contains(t, out, "boss@example.com")
	assert.Contains(t, out, "(no subject)")
}

func TestMailBodyPlainTextPassthrough(t *testing.T) {
	assert.Equal(t, "hello", MailBody("text", "  hello\n"))
}

func TestMailBodyHTMLToMarkdown(t *testing.T) {
	out := MailBody("html", `<html><body><h1>Update</h1><p>All <strong>good</strong>.</p></body></html>`)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Update")
	assert.Contains(t, out, "**good**")
	assert.NotContains(t, out, "<p>")
}

func TestErrorNoteRender(t *testing.T) {
	out := ErrorNote{Message: "task service unavailable"}.Render(60)
	assert.Contains(t, out, "task service unavailable")
}
