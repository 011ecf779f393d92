package game

import "time"

type Action uint8

const (
	Press Action = iota
	Release
)

func (a Action) String() string {
	if a == Release {
		return "release"
	}
	return "press"
}

// Input is a lane event stamped in the clock domain of the track.
type Input struct {
	Lane   Lane
	Action Action
	Time   time.Duration
}
