package dragdrop

import (
	"errors"
	"testing"
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSetter struct {
	calls []string
	err   error
}

func (r *recordingSetter) SetStatusByDrop(id string, status domain.Status) error {
	r.calls = append(r.calls, id+"->"+string(status))
	return r.err
}

func TestBegin_ReturnsPayload(t *testing.T) {
	c := New(&recordingSetter{}, nil)

	p := c.Begin(domain.Task{ID: "TASK-0001", Status: domain.StatusTodo})

	assert.Equal(t, Payload{TaskID: "TASK-0001"}, p)
	_, active := c.Target()
	assert.False(t, active, "begin must not highlight a column")
}

func TestOver_ReportsChanges(t *testing.T) {
	c := New(&recordingSetter{}, nil)

	assert.True(t, c.Over(domain.StatusReview))
	assert.False(t, c.Over(domain.StatusReview))
	assert.True(t, c.Over(domain.StatusDone))

	target, active := c.Target()
	assert.True(t, active)
	assert.Equal(t, domain.StatusDone, target)
}

func TestLeave_ClearsTarget(t *testing.T) {
	c := New(&recordingSetter{}, nil)

	assert.False(t, c.Leave())
	c.Over(domain.StatusTodo)
	assert.True(t, c.Leave())

	_, active := c.Target()
	assert.False(t, active)
}

func TestDrop_CallsSetter(t *testing.T) {
	setter := &recordingSetter{}
	c := New(setter, nil)

	p := c.Begin(domain.Task{ID: "TASK-0004"})
	c.Over(domain.StatusDone)
	require.NoError(t, c.Drop(p, domain.StatusDone))

	assert.Equal(t, []string{"TASK-0004->DONE"}, setter.calls)
	_, active := c.Target()
	assert.False(t, active, "drop clears the highlight")
}

func TestDrop_EmptyPayload(t *testing.T) {
	setter := &recordingSetter{}
	c := New(setter, nil)
	c.Over(domain.StatusReview)

	require.NoError(t, c.Drop(Payload{}, domain.StatusReview))

	assert.Empty(t, setter.calls)
	_, active := c.Target()
	assert.False(t, active)
}

func TestDrop_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	c := New(&recordingSetter{err: boom}, nil)
	c.Over(domain.StatusDone)

	err := c.Drop(Payload{TaskID: "TASK-0001"}, domain.StatusDone)

	assert.ErrorIs(t, err, boom)
	_, active := c.Target()
	assert.False(t, active)
}

func TestDrop_AgainstStore(t *testing.T) {
	seed := store.DemoTasks(time.UnixMilli(0))
	seed[0].Status = domain.StatusReview
	s := store.New(store.WithSeed(seed))
	c := New(s, nil)

	task, ok := s.Get("TASK-1001")
	require.True(t, ok)

	p := c.Begin(task)
	c.Over(domain.StatusDone)
	require.NoError(t, c.Drop(p, domain.StatusDone))

	got, _ := s.Get("TASK-1001")
	assert.Equal(t, domain.StatusDone, got.Status)
	version := s.Snapshot().Version

	// Dropping onto the column it is already in changes nothing.
	require.NoError(t, c.Drop(c.Begin(got), domain.StatusDone))
	assert.Equal(t, version, s.Snapshot().Version)
}
