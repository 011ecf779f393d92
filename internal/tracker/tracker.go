// Package tracker turns a chart and the current time into the working set of
// notes, expires notes that were never struck and applies player input to
// them. It owns every note instance of a session.
package tracker

import (
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/judge"
)

// VisibilityMargin widens the approach window on both sides
const VisibilityMargin = 500 * time.Millisecond

// TransitionWindow is how close a release must be to the next segment of a
// path note for the path to move on
const TransitionWindow = 200 * time.Millisecond

// DefaultApproach is the time between a note appearing and its target time
const DefaultApproach = 2000 * time.Millisecond

// ApproachForSpeed maps a speed setting of 1 (slow) to 10 (fast) to an
// approach time
func ApproachForSpeed(speed int) time.Duration {
	if speed < 1 {
		speed = 1
	} else if speed > 10 {
		speed = 10
	}
	return 2400*time.Millisecond - time.Duration(speed)*160*time.Millisecond
}

type EventKind uint8

const (
	Struck     EventKind = iota // a press judged against a note head
	Released                    // a hold released
	Transition                  // a path moved to its next segment
	Expired                     // a note ran out of time
	Completed                   // a path released after its last segment, not judged
)

var eventKindNames = [...]string{"struck", "released", "transition", "expired", "completed"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is a judgement, or a completion, produced by the tracker
type Event struct {
	Index     int
	Lane      game.Lane
	Kind      EventKind
	Judgement game.Judgement
	Weight    float64
	Time      time.Duration
}

// Scored reports whether the event carries a judgement to be recorded
func (e Event) Scored() bool {
	return e.Kind != Completed
}

type Tracker struct {
	instances []Instance
	active    []*Instance
	next      int // First instance that has never been activated
	approach  time.Duration
}

// New creates a tracker with one waiting instance per note. It panics if the
// chart notes are not sorted by time.
func New(chart *game.Chart, approach time.Duration) *Tracker {
	if !chart.Sorted() {
		panic("tracker: chart notes are not sorted by time")
	}
	t := &Tracker{
		instances: make([]Instance, len(chart.Notes)),
		approach:  approach,
	}
	for i, n := range chart.Notes {
		t.instances[i] = Instance{Index: i, Note: n}
	}
	return t
}

// Reset returns every instance to waiting and empties the working set
func (t *Tracker) Reset() {
	for i := range t.instances {
		t.instances[i].State = Waiting
		t.instances[i].HoldProgress = 0
		t.instances[i].PathIndex = 0
	}
	t.active = t.active[:0]
	t.next = 0
}

func (t *Tracker) Approach() time.Duration {
	return t.approach
}

// Done reports whether every note has been activated and finished
func (t *Tracker) Done() bool {
	return t.next == len(t.instances) && len(t.active) == 0
}

// Advance moves the tracker to now. Notes entering the visibility window
// become approaching, notes that ran out of time are missed and finished
// notes leave the working set. The returned events are the forced misses.
func (t *Tracker) Advance(now time.Duration) []Event {
	var events []Event

	// Notes are sorted, so activation stops at the first note beyond the
	// window. A note already behind the window, after a long frame, is
	// activated anyway and expires below.
	end := now + t.approach + VisibilityMargin
	for ; t.next < len(t.instances); t.next++ {
		inst := &t.instances[t.next]
		if inst.Note.Start().Time > end {
			break
		}
		inst.State = Approaching
		t.active = append(t.active, inst)
	}

	for _, inst := range t.active {
		if e, ok := t.expire(inst, now); ok {
			events = append(events, e)
		}
	}
	t.prune()
	return events
}

func (t *Tracker) expire(inst *Instance, now time.Duration) (Event, bool) {
	head := inst.Note.Start()
	missed := Event{
		Index:     inst.Index,
		Lane:      inst.Lane(),
		Kind:      Expired,
		Judgement: judge.ForcedMiss(),
		Weight:    1,
		Time:      now,
	}

	switch n := inst.Note.(type) {
	case game.Tap:
		if inst.State == Approaching && judge.Expired(head.Time, now) {
			inst.State = Missed
			return missed, true
		}
	case game.Hold:
		switch inst.State {
		case Approaching:
			if judge.Expired(head.Time, now) {
				inst.State = Missed
				return missed, true
			}
		case Holding:
			inst.HoldProgress = progress(now-head.Time, n.Duration)
			if judge.Expired(n.End(), now) {
				inst.State = Missed
				return missed, true
			}
		}
	case game.Path:
		// A held path only finishes on release
		if inst.State == Approaching && judge.Expired(head.Time, now) {
			inst.State = Missed
			return missed, true
		}
	default:
		panic("tracker: unknown note variant")
	}
	return Event{}, false
}

func progress(elapsed, total time.Duration) float64 {
	p := float64(elapsed) / float64(total)
	if p < 0 {
		return 0
	} else if p > 1 {
		return 1
	}
	return p
}

func (t *Tracker) prune() {
	kept := t.active[:0]
	for _, inst := range t.active {
		if !inst.State.Terminal() {
			kept = append(kept, inst)
		}
	}
	for i := len(kept); i < len(t.active); i++ {
		t.active[i] = nil
	}
	t.active = kept
}

// Active returns a copy of the working set in chart order
func (t *Tracker) Active() []Instance {
	active := make([]Instance, len(t.active))
	for i, inst := range t.active {
		active[i] = *inst
	}
	return active
}

// Instance returns a copy of the instance of the i-th chart note
func (t *Tracker) Instance(i int) Instance {
	return t.instances[i]
}
