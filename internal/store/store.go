// Package store holds the board's task collection, the single source of truth
// for every task shown in the UI.
package store

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
)

// UntitledTask is the title given to tasks created without one
const UntitledTask = "Untitled"

// Direction is a one-column step for Move
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Snapshot is an immutable view of the collection.
//
// Every mutation publishes a snapshot with a new Version and a freshly
// allocated task slice, so observers can detect change by comparing versions.
// Callers must treat Tasks as read-only.
type Snapshot struct {
	Version uint64
	Tasks   []domain.Task
}

// Store is the authoritative in-memory collection of tasks
type Store struct {
	mu          sync.RWMutex
	backend     Backend
	ids         IDGenerator
	now         func() time.Time
	strict      bool
	logger      *slog.Logger
	version     uint64
	subscribers map[int]func(Snapshot)
	nextSubID   int
	seed        []domain.Task
}

// Option configures a Store
type Option func(*Store)

// WithBackend sets the backing collection
func WithBackend(b Backend) Option {
	return func(s *Store) { s.backend = b }
}

// WithSeed seeds the default memory backend. Ignored when WithBackend is used.
func WithSeed(tasks []domain.Task) Option {
	return func(s *Store) { s.seed = tasks }
}

// WithIDGenerator overrides the ID generator
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock overrides the clock used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithStrictIDs makes Update, Delete, Move and SetStatusByDrop return a
// NotFoundError for unknown IDs instead of silently doing nothing
func WithStrictIDs(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a store
func New(opts ...Option) *Store {
	s := &Store{
		now:         time.Now,
		logger:      slog.Default(),
		subscribers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.backend == nil {
		s.backend = NewMemoryBackend(s.seed)
	}
	if s.ids == nil {
		s.ids = NewCounterIDs(1, s.backend.Load())
	}
	s.seed = nil
	return s
}

// Snapshot returns the current collection
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Version: s.version, Tasks: s.backend.Load()}
}

// Get returns the task with the given ID
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.backend.Load() {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return domain.Task{}, false
}

// Subscribe registers fn to be called with every new snapshot.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Create appends a new task built from draft and returns it
func (s *Store) Create(draft domain.TaskDraft) (domain.Task, error) {
	s.mu.Lock()
	task, err := s.build(draft, false)
	if err != nil {
		s.mu.Unlock()
		return domain.Task{}, err
	}
	task.ID = s.ids.NextID()

	current := s.backend.Load()
	next := make([]domain.Task, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, task)
	snap := s.publish(next)
	s.mu.Unlock()

	s.logger.Debug("task created", "id", task.ID, "status", task.Status)
	s.notify(snap)
	return task.Clone(), nil
}

// BulkCreate appends one task per draft, in order, all in status TODO.
//
// Suggested statuses are ignored: generated tasks always enter the backlog.
// Either every draft is appended or, if any fails validation, none is.
func (s *Store) BulkCreate(drafts []domain.TaskDraft) ([]domain.Task, error) {
	if len(drafts) == 0 {
		return []domain.Task{}, nil
	}

	s.mu.Lock()
	built := make([]domain.Task, 0, len(drafts))
	for _, d := range drafts {
		task, err := s.build(d, true)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		built = append(built, task)
	}
	// IDs are taken only once the whole batch is valid
	for i := range built {
		built[i].ID = s.ids.NextID()
	}

	current := s.backend.Load()
	next := make([]domain.Task, 0, len(current)+len(built))
	next = append(next, current...)
	next = append(next, built...)
	snap := s.publish(next)
	s.mu.Unlock()

	s.logger.Info("tasks created", "count", len(built))
	s.notify(snap)

	out := make([]domain.Task, len(built))
	for i, t := range built {
		out[i] = t.Clone()
	}
	return out, nil
}

// Update replaces the stored task with the same ID by full value
// substitution. ID and CreatedAt of the stored task are kept.
func (s *Store) Update(task domain.Task) error {
	if !task.Status.Valid() {
		return &domain.ValidationError{Field: "status", Value: string(task.Status)}
	}
	if !task.Priority.Valid() {
		return &domain.ValidationError{Field: "priority", Value: string(task.Priority)}
	}

	return s.replace("update", task.ID, func(old domain.Task) (domain.Task, bool) {
		updated := task.Clone()
		updated.ID = old.ID
		updated.CreatedAt = old.CreatedAt
		if strings.TrimSpace(updated.Title) == "" {
			updated.Title = UntitledTask
		}
		if updated.Tags == nil {
			updated.Tags = []string{}
		}
		return updated, true
	})
}

// Delete removes the task with the given ID
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	current := s.backend.Load()
	idx := indexOf(current, id)
	if idx < 0 {
		s.mu.Unlock()
		return s.missing("delete", id)
	}

	next := make([]domain.Task, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	snap := s.publish(next)
	s.mu.Unlock()

	s.logger.Debug("task deleted", "id", id)
	s.notify(snap)
	return nil
}

// Move shifts the task one column left or right in the fixed column order.
// Moving past the first or last column leaves the task where it is.
func (s *Store) Move(id string, dir Direction) error {
	return s.replace("move", id, func(old domain.Task) (domain.Task, bool) {
		idx := old.Status.Column() + int(dir)
		if idx < 0 {
			idx = 0
		}
		if idx >= len(domain.Statuses) {
			idx = len(domain.Statuses) - 1
		}

		status := domain.Statuses[idx]
		if status == old.Status {
			return old, false
		}
		moved := old.Clone()
		moved.Status = status
		return moved, true
	})
}

// SetStatusByDrop sets the task's status to target. Any column may be
// dropped onto any other; dropping onto the current column changes nothing.
func (s *Store) SetStatusByDrop(id string, target domain.Status) error {
	if !target.Valid() {
		return &domain.ValidationError{Field: "status", Value: string(target)}
	}

	return s.replace("drop", id, func(old domain.Task) (domain.Task, bool) {
		if old.Status == target {
			return old, false
		}
		moved := old.Clone()
		moved.Status = target
		return moved, true
	})
}

// replace applies fn to the task with the given ID. When fn reports no
// change, no snapshot is published.
func (s *Store) replace(op, id string, fn func(domain.Task) (domain.Task, bool)) error {
	s.mu.Lock()
	current := s.backend.Load()
	idx := indexOf(current, id)
	if idx < 0 {
		s.mu.Unlock()
		return s.missing(op, id)
	}

	updated, changed := fn(current[idx])
	if !changed {
		s.mu.Unlock()
		return nil
	}

	next := make([]domain.Task, len(current))
	copy(next, current)
	next[idx] = updated
	snap := s.publish(next)
	s.mu.Unlock()

	s.logger.Debug("task updated", "op", op, "id", id, "status", updated.Status)
	s.notify(snap)
	return nil
}

// build validates a draft and applies creation defaults. The ID is left
// empty for the caller to assign.
func (s *Store) build(d domain.TaskDraft, forceTodo bool) (domain.Task, error) {
	status := domain.StatusTodo
	if d.Status != "" && !forceTodo {
		parsed, err := domain.ParseStatus(d.Status)
		if err != nil {
			return domain.Task{}, err
		}
		status = parsed
	}

	priority := domain.PriorityMedium
	if d.Priority != "" {
		parsed, err := domain.ParsePriority(d.Priority)
		if err != nil {
			return domain.Task{}, err
		}
		priority = parsed
	}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = UntitledTask
	}

	tags := make([]string, len(d.Tags))
	copy(tags, d.Tags)

	return domain.Task{
		Title:       title,
		Description: d.Description,
		Status:      status,
		Priority:    priority,
		Assignee:    strings.TrimSpace(d.Assignee),
		Tags:        tags,
		CreatedAt:   s.now().UnixMilli(),
	}, nil
}

// publish swaps in a new collection and bumps the version. Caller holds the lock.
func (s *Store) publish(tasks []domain.Task) Snapshot {
	s.backend.Replace(tasks)
	s.version++
	return Snapshot{Version: s.version, Tasks: tasks}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) missing(op, id string) error {
	if s.strict {
		return &domain.NotFoundError{Op: op, ID: id}
	}
	s.logger.Debug("ignoring operation on unknown task", "op", op, "id", id)
	return nil
}

func indexOf(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
