package tasklist

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpittamp/graphpilot/src/graph"
)

// fakeService blocks each call until release is closed, so tests can observe
// the optimistic state before reconciliation runs.
type fakeService struct {
	mu      sync.Mutex
	release chan struct{}

	addResult []graph.TodoTask
	addErr    error
	deleteErr error

	addCalls    [][]string
	deleteCalls [][]string
}

func newFakeService() *fakeService {
	return &fakeService{release: make(chan struct{})}
}

func (f *fakeService) AddTasks(_ context.Context, _ string, titles []string) ([]graph.TodoTask, error) {
	<-f.release
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, titles)
	return f.addResult, f.addErr
}

func (f *fakeService) DeleteTasks(_ context.Context, _ string, ids []string) error {
	<-f.release
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, ids)
	return f.deleteErr
}

func TestSubmitOptimisticThenConfirmed(t *testing.T) {
	service := newFakeService()
	service.addResult = []graph.TodoTask{{ID: "srv-1", Title: "Buy milk", Status: graph.StatusNotStarted}}
	list := New(service, "list-1", nil)

	require.True(t, list.Submit(context.Background(), "Buy milk"))

	// Before the create call resolves, a provisional entry is visible.
	entries := list.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "Buy milk", entries[0].Title)
	assert.True(t, entries[0].Sending())
	assert.True(t, strings.HasPrefix(entries[0].ID, "local-"))

	close(service.release)
	list.Wait()

	entries = list.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "srv-1", entries[0].ID)
	assert.Equal(t, "Buy milk", entries[0].Title)
	assert.False(t, entries[0].Sending())
	assert.Equal(t, StateConfirmed, entries[0].State)
}

func TestSubmitKeepsPositionOnConfirm(t *testing.T) {
	service := newFakeService()
	service.addResult = []graph.TodoTask{{ID: "srv-2", Title: "Second", Status: graph.StatusNotStarted}}
	list := New(service, "list-1", nil)
	list.Load([]graph.TodoTask{{ID: "t1", Title: "First"}})

	require.True(t, list.Submit(context.Background(), "Second"))
	close(service.release)
	list.Wait()

	entries := list.Snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, "t1", entries[0].ID)
	assert.Equal(t, "srv-2", entries[1].ID)
}

func TestSubmitFailureRollsBack(t *testing.T) {
	service := newFakeService()
	service.addErr = errors.New("upstream down")
	list := New(service, "list-1", nil)

	var notified error
	list.OnError = func(err error) { notified = err }

	require.True(t, list.Submit(context.Background(), "Buy milk"))
	require.Len(t, list.Snapshot(), 1)

	close(service.release)
	list.Wait()

	assert.Empty(t, list.Snapshot())
	assert.ErrorContains(t, notified, "upstream down")
}

func TestSubmitRejectsBlankTitle(t *testing.T) {
	service := newFakeService()
	close(service.release)
	list := New(service, "list-1", nil)

	assert.False(t, list.Submit(context.Background(), ""))
	assert.False(t, list.Submit(context.Background(), "   \t\n"))
	list.Wait()

	assert.Empty(t, list.Snapshot())
	assert.Empty(t, service.addCalls)
}

func TestRemoveOptimisticThenConfirmed(t *testing.T) {
	service := newFakeService()
	list := New(service, "list-1", nil)
	list.Load([]graph.TodoTask{{ID: "t1", Title: "Buy milk", Status: graph.StatusNotStarted}})

	list.Remove(context.Background(), "t1")
	assert.Empty(t, list.Snapshot())

	close(service.release)
	list.Wait()

	assert.Empty(t, list.Snapshot())
	require.Len(t, service.deleteCalls, 1)
	assert.Equal(t, []string{"t1"}, service.deleteCalls[0])
}

func TestRemoveFailureReinsertsAtEnd(t *testing.T) {
	service := newFakeService()
	service.deleteErr = errors.New("upstream down")
	list := New(service, "list-1", nil)
	list.Load([]graph.TodoTask{
		{ID: "t1", Title: "First", Status: graph.StatusNotStarted},
		{ID: "t2", Title: "Second", Status: graph.StatusNotStarted},
		{ID: "t3", Title: "Third", Status: graph.StatusNotStarted},
	})

	list.Remove(context.Background(), "t1")
	require.Len(t, list.Snapshot(), 2)

	close(service.release)
	list.Wait()

	entries := list.Snapshot()
	require.Len(t, entries, 3)
	// The failed delete brings the entry back at the end, not at its old
	// position.
	assert.Equal(t, "t2", entries[0].ID)
	assert.Equal(t, "t3", entries[1].ID)
	assert.Equal(t, "t1", entries[2].ID)
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	service := newFakeService()
	close(service.release)
	list := New(service, "list-1", nil)
	list.Load([]graph.TodoTask{{ID: "t1", Title: "First"}})

	list.Remove(context.Background(), "nope")
	list.Wait()

	assert.Len(t, list.Snapshot(), 1)
	assert.Empty(t, service.deleteCalls)
}

func TestNoDuplicateIDs(t *testing.T) {
	service := newFakeService()
	service.addResult = []graph.TodoTask{{ID: "srv-1", Title: "A", Status: graph.StatusNotStarted}}
	list := New(service, "list-1", nil)

	require.True(t, list.Submit(context.Background(), "A"))
	close(service.release)
	list.Wait()

	seen := map[string]bool{}
	for _, e := range list.Snapshot() {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}
