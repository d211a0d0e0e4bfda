// Package tasklist keeps a locally visible view of one To-Do list that
// reflects mutations immediately and reconciles them with the task service
// afterwards. Each entry moves through an explicit lifecycle: pending while
// its server call is in flight, confirmed once the server acknowledged it,
// rejected when the call failed.
package tasklist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vpittamp/graphpilot/src/graph"
)

// EntryState is the reconciliation state of one visible entry.
type EntryState string

const (
	// StatePending marks an entry whose server call has not resolved yet.
	StatePending EntryState = "pending"
	// StateConfirmed marks an entry the server has acknowledged.
	StateConfirmed EntryState = "confirmed"
	// StateRejected marks an entry whose server call failed. Rejected
	// entries are dropped from the visible list, the state only appears
	// in failure notifications.
	StateRejected EntryState = "rejected"
)

// Entry is one visible task.
type Entry struct {
	ID     string
	Title  string
	Status string
	State  EntryState
}

// Sending reports whether the entry's server call is still in flight.
func (e Entry) Sending() bool {
	return e.State == StatePending
}

// TaskService is the slice of the task API the list needs.
type TaskService interface {
	AddTasks(ctx context.Context, listID string, titles []string) ([]graph.TodoTask, error)
	DeleteTasks(ctx context.Context, listID string, ids []string) error
}

// List is an optimistic view of a single task list. All methods are safe for
// concurrent use.
type List struct {
	service TaskService
	listID  string
	logger  *slog.Logger

	// OnError, when set, receives reconciliation failures. The visible
	// list has already been rolled back by the time it is called.
	OnError func(error)

	mu      sync.Mutex
	entries []Entry
	wg      sync.WaitGroup
	seq     int
}

// New creates a list bound to one task list id.
func New(service TaskService, listID string, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	return &List{
		service: service,
		listID:  listID,
		logger:  logger.With("component", "tasklist", "list_id", listID),
	}
}

// Load replaces the visible entries with the given confirmed tasks.
func (l *List) Load(tasks []graph.TodoTask) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
	for _, task := range tasks {
		l.entries = append(l.entries, Entry{
			ID:     task.ID,
			Title:  task.Title,
			Status: task.Status,
			State:  StateConfirmed,
		})
	}
}

// Snapshot returns a copy of the visible entries in display order.
func (l *List) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Submit appends a provisional entry for title and starts the create call in
// the background. An all-whitespace title is rejected before anything else
// happens: no entry appears and no call is issued. The returned bool reports
// whether the entry was accepted.
//
// On success the provisional entry is replaced at its current index with the
// server-assigned task, keeping its position. On failure the entry is
// removed outright.
func (l *List) Submit(ctx context.Context, title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}

	l.mu.Lock()
	provisionalID := l.nextProvisionalID()
	l.entries = append(l.entries, Entry{
		ID:     provisionalID,
		Title:  title,
		Status: graph.StatusNotStarted,
		State:  StatePending,
	})
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		created, err := l.service.AddTasks(ctx, l.listID, []string{title})
		if err != nil || len(created) == 0 {
			if err == nil {
				err = fmt.Errorf("task %q was not created", title)
			}
			l.logger.Warn("task create failed", "title", title, "error", err)
			l.drop(provisionalID)
			l.notify(err)
			return
		}

		task := created[0]
		l.mu.Lock()
		if i := l.indexOf(provisionalID); i >= 0 {
			l.entries[i] = Entry{
				ID:     task.ID,
				Title:  task.Title,
				Status: task.Status,
				State:  StateConfirmed,
			}
		}
		l.mu.Unlock()
	}()
	return true
}

// Remove hides the entry immediately and starts the delete call in the
// background. If the delete fails the entry reappears at the end of the
// list; the original position is not tracked.
func (l *List) Remove(ctx context.Context, id string) {
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return
	}
	removed := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		if err := l.service.DeleteTasks(ctx, l.listID, []string{id}); err != nil {
			l.logger.Warn("task delete failed", "task_id", id, "error", err)
			l.mu.Lock()
			if l.indexOf(id) < 0 {
				l.entries = append(l.entries, removed)
			}
			l.mu.Unlock()
			l.notify(err)
		}
	}()
}

// Wait blocks until every in-flight reconciliation has resolved.
func (l *List) Wait() {
	l.wg.Wait()
}

func (l *List) drop(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		l.entries[i].State = StateRejected
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
}

// indexOf must be called with l.mu held.
func (l *List) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// nextProvisionalID must be called with l.mu held. The sequence suffix keeps
// ids unique when two submissions land in the same millisecond.
func (l *List) nextProvisionalID() string {
	l.seq++
	return fmt.Sprintf("local-%d-%d", time.Now().UnixMilli(), l.seq)
}

func (l *List) notify(err error) {
	if l.OnError != nil {
		l.OnError(err)
	}
}
