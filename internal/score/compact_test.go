package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

var compactTests = []struct {
	inputs  []game.Input
	compact []InputsCompact
}{
	{
		inputs:  []game.Input{},
		compact: emptyCompact(),
	},
	{
		inputs: []game.Input{
			{Lane: game.UpLeft, Action: game.Press, Time: 100},
			{Lane: game.DownRight, Action: game.Press, Time: 200},
			{Lane: game.DownRight, Action: game.Release, Time: 300},
		},
		compact: func() []InputsCompact {
			c := emptyCompact()
			c[game.UpLeft].Presses = []time.Duration{100}
			c[game.DownRight].Presses = []time.Duration{200}
			c[game.DownRight].Releases = []time.Duration{300}
			return c
		}(),
	},
	{
		inputs: []game.Input{
			{Lane: game.UpRight, Action: game.Press, Time: 1},
			{Lane: game.UpRight, Action: game.Release, Time: 2},
			{Lane: game.UpRight, Action: game.Press, Time: 2},
		},
		compact: func() []InputsCompact {
			c := emptyCompact()
			c[game.UpRight].Presses = []time.Duration{1, 2}
			c[game.UpRight].Releases = []time.Duration{2}
			return c
		}(),
	},
}

func emptyCompact() []InputsCompact {
	c := make([]InputsCompact, game.NLanes)
	for i := range c {
		c[i] = InputsCompact{Lane: game.Lanes[i], Presses: []time.Duration{}, Releases: []time.Duration{}}
	}
	return c
}

func equalTimes(p, q []time.Duration) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func TestCompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := compactInputs(test.inputs)
		if len(out) != len(test.compact) {
			t.Fatalf("got %v lanes, expected %v", len(out), len(test.compact))
		}
		for i := range out {
			if out[i].Lane != test.compact[i].Lane ||
				!equalTimes(out[i].Presses, test.compact[i].Presses) ||
				!equalTimes(out[i].Releases, test.compact[i].Releases) {
				t.Log("out     ", out)
				t.Log("expected", test.compact)
				t.Fail()
			}
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := uncompactInputs(test.compact)
		if len(out) != len(test.inputs) {
			t.Fatalf("got %v inputs, expected %v", len(out), len(test.inputs))
		}
		for i := range out {
			if out[i] != test.inputs[i] {
				t.Log("out     ", out)
				t.Log("expected", test.inputs)
				t.Fail()
			}
		}
	}
}
