package tracker

import (
	"git.lost.host/meutraa/orbital/internal/game"
)

// State is the lifecycle state of a note instance.
//
//	Waiting -> Approaching -> [Holding] -> Hit | Missed
type State uint8

const (
	Waiting State = iota
	Approaching
	Holding
	Hit
	Missed
)

var stateNames = [...]string{"waiting", "approaching", "holding", "hit", "missed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the note is finished with
func (s State) Terminal() bool {
	return s == Hit || s == Missed
}

// Instance is the runtime state of one chart note.
type Instance struct {
	Index        int // Index of the note in the chart
	Note         game.Note
	State        State
	HoldProgress float64 // 0..1 while a hold is held
	PathIndex    int     // Segment of a path note currently targeted
}

// Lane is the lane the note currently targets. Only path notes move.
func (i *Instance) Lane() game.Lane {
	if p, ok := i.Note.(game.Path); ok && i.State == Holding {
		return p.Segments[i.PathIndex].Lane
	}
	return i.Note.Start().Lane
}
