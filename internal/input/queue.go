// Package input turns physical key events into lane inputs stamped in the
// clock domain of the track.
package input

import (
	"sync"

	"git.lost.host/meutraa/orbital/internal/game"
)

// Queue holds inputs between frames. At most one press and one release per
// lane are pending; a newer event replaces an older one of the same kind.
type Queue struct {
	mu      sync.Mutex
	pending []game.Input
}

func (q *Queue) Push(in game.Input) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, p := range q.pending {
		if p.Lane == in.Lane && p.Action == in.Action {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			break
		}
	}
	q.pending = append(q.pending, in)
}

// Drain returns the pending inputs in arrival order and empties the queue
func (q *Queue) Drain() []game.Input {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	ins := q.pending
	q.pending = nil
	return ins
}

func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
}

// Controls are the non lane actions a router can report
type Controls struct {
	Quit  func()
	Pause func() // toggles pause
}

// Router feeds a queue from a physical device until closed.
type Router interface {
	Start(q *Queue) error
	Close() error
}

// lanes tracks which lanes are held so repeats and stray releases are dropped
type lanes struct {
	pressed [game.NLanes]bool
}

func (l *lanes) press(lane game.Lane) bool {
	if l.pressed[lane] {
		return false
	}
	l.pressed[lane] = true
	return true
}

func (l *lanes) release(lane game.Lane) bool {
	if !l.pressed[lane] {
		return false
	}
	l.pressed[lane] = false
	return true
}
