package score

import (
	"sort"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

// InputsCompact holds the press and release times of a single lane
type InputsCompact struct {
	Lane     game.Lane
	Presses  []time.Duration
	Releases []time.Duration
}

func compactInputs(inputs []game.Input) []InputsCompact {
	ins := make([]InputsCompact, game.NLanes)
	for i := range ins {
		ins[i] = InputsCompact{
			Lane:     game.Lanes[i],
			Presses:  []time.Duration{},
			Releases: []time.Duration{},
		}
	}
	for _, i := range inputs {
		if !i.Lane.Valid() {
			continue
		}
		c := &ins[i.Lane]
		if i.Action == game.Release {
			c.Releases = append(c.Releases, i.Time)
		} else {
			c.Presses = append(c.Presses, i.Time)
		}
	}
	return ins
}

// uncompactInputs rebuilds the input log in time order. A release sorts
// before a press at the same time since a lane must be up to be pressed.
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, c := range inputs {
		for _, t := range c.Presses {
			ins = append(ins, game.Input{Lane: c.Lane, Action: game.Press, Time: t})
		}
		for _, t := range c.Releases {
			ins = append(ins, game.Input{Lane: c.Lane, Action: game.Release, Time: t})
		}
	}
	sort.SliceStable(ins, func(i, j int) bool {
		if ins[i].Time != ins[j].Time {
			return ins[i].Time < ins[j].Time
		}
		return ins[i].Action == game.Release && ins[j].Action == game.Press
	})
	return ins
}
