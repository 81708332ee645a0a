package planning

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Tracker keys in-flight AI requests by session id.
//
// A result is only applied if Finish reports its session still live: closing
// the dialog that started a request cancels it, and a late reply for a
// cancelled or superseded session is dropped.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]context.CancelFunc
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]context.CancelFunc)}
}

// Begin starts a session and returns its id and a context cancelled by Cancel
func (t *Tracker) Begin(parent context.Context) (string, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	id := uuid.NewString()

	t.mu.Lock()
	t.sessions[id] = cancel
	t.mu.Unlock()

	return id, ctx
}

// Cancel aborts the session. Unknown ids are ignored.
func (t *Tracker) Cancel(id string) {
	t.mu.Lock()
	cancel, ok := t.sessions[id]
	delete(t.sessions, id)
	t.mu.Unlock()

	if ok {
		cancel()
	}
}

// CancelAll aborts every live session
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	sessions := t.sessions
	t.sessions = make(map[string]context.CancelFunc)
	t.mu.Unlock()

	for _, cancel := range sessions {
		cancel()
	}
}

// Finish ends the session and reports whether its result is still wanted
func (t *Tracker) Finish(id string) bool {
	t.mu.Lock()
	cancel, ok := t.sessions[id]
	delete(t.sessions, id)
	t.mu.Unlock()

	if ok {
		cancel()
	}
	return ok
}

// Len returns the number of live sessions
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
