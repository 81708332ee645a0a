package store

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/riordanpawley/taskflow/internal/domain"
)

// Backend holds the task collection behind the store.
//
// The store never mutates a slice it got from Load; every change is handed
// to Replace as a freshly built slice. A persistent or remote backend can be
// swapped in without touching callers of the store.
type Backend interface {
	Load() []domain.Task
	Replace(tasks []domain.Task)
}

// MemoryBackend keeps tasks in process memory
type MemoryBackend struct {
	tasks []domain.Task
}

// NewMemoryBackend creates a backend seeded with the given tasks
func NewMemoryBackend(seed []domain.Task) *MemoryBackend {
	tasks := make([]domain.Task, len(seed))
	for i, t := range seed {
		tasks[i] = t.Clone()
	}
	return &MemoryBackend{tasks: tasks}
}

// Load returns the current collection
func (b *MemoryBackend) Load() []domain.Task {
	return b.tasks
}

// Replace swaps in a new collection
func (b *MemoryBackend) Replace(tasks []domain.Task) {
	b.tasks = tasks
}

// IDGenerator hands out task IDs
type IDGenerator interface {
	NextID() string
}

// idPrefix is the fixed prefix of every task ID
const idPrefix = "TASK-"

// CounterIDs generates monotonically increasing TASK-#### identifiers
type CounterIDs struct {
	mu   sync.Mutex
	next int
}

// NewCounterIDs creates a generator whose first ID is after every numeric
// suffix already present in existing (and never below start)
func NewCounterIDs(start int, existing []domain.Task) *CounterIDs {
	next := start
	for _, t := range existing {
		if n, ok := parseID(t.ID); ok && n >= next {
			next = n + 1
		}
	}
	return &CounterIDs{next: next}
}

// NextID returns the next identifier
func (c *CounterIDs) NextID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := FormatID(c.next)
	c.next++
	return id
}

// FormatID renders n as a task ID, zero-padded to four digits
func FormatID(n int) string {
	return fmt.Sprintf("%s%04d", idPrefix, n)
}

// parseID extracts the numeric suffix of a TASK-#### identifier
func parseID(id string) (int, bool) {
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
