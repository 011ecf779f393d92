package engine

import (
	"time"

	"git.lost.host/meutraa/orbital/internal/clock"
	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/input"
	"git.lost.host/meutraa/orbital/internal/score"
)

// Replay plays recorded inputs against a chart on a manual clock and returns
// the result of the session. Each input gets a tick of its own at its own
// time, with frame ticks in between, so a recorded session whose frames
// kept up with the judgement windows replays to the same result.
func Replay(chart *game.Chart, duration time.Duration, inputs []game.Input, approach time.Duration) (score.Result, error) {
	clk := clock.NewManual(duration)
	q := &input.Queue{}
	c := New(chart, clk, q, Options{Approach: approach})
	if err := c.Start(); nil != err {
		return score.Result{}, err
	}

	t := time.Duration(0)
	next := 0
	for {
		step := t + DefaultFramePeriod
		if next < len(inputs) && inputs[next].Time <= step {
			if inputs[next].Time > t {
				step = inputs[next].Time
			} else {
				step = t
			}
			q.Push(inputs[next])
			next++
		}
		t = step
		clk.Set(t)
		done, err := c.Tick()
		if done {
			return c.result, err
		}
	}
}
