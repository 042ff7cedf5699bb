package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// Recorder is an event handler that keeps every event it receives
type Recorder struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
}

// NewRecorder subscribes to eventTypes; none means all events
func NewRecorder(eventTypes ...string) *Recorder {
	return &Recorder{types: eventTypes}
}

// EventTypes implements shared.EventHandler
func (r *Recorder) EventTypes() []string { return r.types }

// Handle implements shared.EventHandler
func (r *Recorder) Handle(_ context.Context, ev shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Changes returns the recorded entity changes as "resource:action"
func (r *Recorder) Changes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		if changed, ok := ev.(*shared.EntityChangedEvent); ok {
			out = append(out, changed.AggregateType()+":"+changed.Action)
		}
	}
	return out
}

// Len returns the number of recorded events
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// WaitFor requires that at least n events arrive within timeout
func (r *Recorder) WaitFor(t *testing.T, n int, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool { return r.Len() >= n }, timeout, 10*time.Millisecond,
		"expected %d events, got %d", n, r.Len())
}
