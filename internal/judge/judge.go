// Package judge maps the time between a note and an event to a judgement.
// Every entry point goes through the same window comparison so that a late
// press and an expired note agree on where a miss starts.
package judge

import (
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

// Judgement windows, as the absolute time between a note and an event
const (
	Perfect = 40 * time.Millisecond
	Good    = 100 * time.Millisecond
	Miss    = 150 * time.Millisecond
)

// PathScale widens every window for path segment transitions
const PathScale = 1.5

// PathWeight is the share of a full judgement a path transition scores
const PathWeight = 0.5

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func scaled(w time.Duration, scale float64) time.Duration {
	if scale == 1 {
		return w
	}
	return time.Duration(float64(w) * scale)
}

// Judge compares an event against a target. ok is false when the event is
// outside the scaled miss window and must be ignored.
func Judge(target, event time.Duration, scale float64) (j game.Judgement, ok bool) {
	d := abs(event - target)
	switch {
	case d <= scaled(Perfect, scale):
		return game.Perfect, true
	case d <= scaled(Good, scale):
		return game.Good, true
	case d <= scaled(Miss, scale):
		return game.Miss, true
	}
	return game.Miss, false
}

// Strike judges a press against the head of a note.
func Strike(note game.Note, at time.Duration) (game.Judgement, bool) {
	return Judge(note.Start().Time, at, 1)
}

// HoldRelease judges the release of a started hold. A release always has an
// outcome: anything outside the good window is a miss.
func HoldRelease(note game.Hold, at time.Duration) game.Judgement {
	j, ok := Judge(note.End(), at, 1)
	if !ok {
		return game.Miss
	}
	return j
}

// ForcedMiss is the judgement of a note that was never struck in time.
func ForcedMiss() game.Judgement {
	return game.Miss
}

// PathTransition judges a path note moving to its next segment with widened
// windows. Outside the widened good window it is a miss.
func PathTransition(expected, actual time.Duration) game.Judgement {
	j, ok := Judge(expected, actual, PathScale)
	if !ok {
		return game.Miss
	}
	return j
}

// Expired reports whether a note targeted at t can no longer be struck at now.
func Expired(t, now time.Duration) bool {
	return now > t+Miss
}

// Reachable reports whether an event at is close enough to t to be judged.
func Reachable(t, at time.Duration) bool {
	return abs(at-t) <= Miss
}
