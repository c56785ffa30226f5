package event

import (
	"sync"

	"github.com/lixenwraith/astral/parameter"
)

// Queue carries input commands from the event poller to the session loop
// Thread-Safety: Push from any goroutine, Consume from the main loop only
//
// Overflow: paint commands are refused once CommandQueueSize commands are pending.
// Control commands (search, reset, maze, quit, ...) are always accepted and never
// displaced by a drag burst.
type Queue struct {
	mu      sync.Mutex
	pending []Command
	dropped uint64
}

func NewQueue() *Queue {
	return &Queue{
		pending: make([]Command, 0, parameter.CommandQueueSize),
	}
}

// Push appends cmd and reports whether it was accepted
func (q *Queue) Push(cmd Command) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if cmd.Type.IsPaint() && len(q.pending) >= parameter.CommandQueueSize {
		q.dropped++
		return false
	}
	q.pending = append(q.pending, cmd)
	return true
}

// Consume returns all pending commands in FIFO order and empties the queue
func (q *Queue) Consume() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = make([]Command, 0, parameter.CommandQueueSize)
	return out
}

// Len returns the pending command count
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Dropped returns how many paint commands were refused since creation
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
