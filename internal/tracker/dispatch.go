package tracker

import (
	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/judge"
)

// Apply dispatches a player input and returns the resulting events. Inputs
// that match no note are dropped without penalty.
func (t *Tracker) Apply(in game.Input) []Event {
	var events []Event
	switch in.Action {
	case game.Press:
		if e, ok := t.press(in); ok {
			events = append(events, e)
		}
	case game.Release:
		events = t.release(in)
	}
	t.prune()
	return events
}

func (t *Tracker) press(in game.Input) (Event, bool) {
	var inst *Instance
	for _, a := range t.active {
		head := a.Note.Start()
		if a.State == Approaching && head.Lane == in.Lane && judge.Reachable(head.Time, in.Time) {
			inst = a
			break
		}
	}
	if inst == nil {
		return Event{}, false
	}

	j, ok := judge.Strike(inst.Note, in.Time)
	if !ok {
		return Event{}, false
	}

	switch inst.Note.(type) {
	case game.Tap:
		inst.State = Hit
	case game.Hold, game.Path:
		if j == game.Miss {
			inst.State = Missed
		} else {
			inst.State = Holding
			inst.PathIndex = 0
		}
	default:
		panic("tracker: unknown note variant")
	}

	return Event{
		Index:     inst.Index,
		Lane:      in.Lane,
		Kind:      Struck,
		Judgement: j,
		Weight:    1,
		Time:      in.Time,
	}, true
}

func (t *Tracker) release(in game.Input) []Event {
	var events []Event

	for _, a := range t.active {
		if h, ok := a.Note.(game.Hold); ok && a.State == Holding && h.Lane == in.Lane {
			a.State = Hit
			a.HoldProgress = progress(in.Time-h.Time, h.Duration)
			events = append(events, Event{
				Index:     a.Index,
				Lane:      in.Lane,
				Kind:      Released,
				Judgement: judge.HoldRelease(h, in.Time),
				Weight:    1,
				Time:      in.Time,
			})
			break
		}
	}

	// A path changes lane while it is held, so any lane may move it on
	for _, a := range t.active {
		p, ok := a.Note.(game.Path)
		if !ok || a.State != Holding {
			continue
		}
		next := a.PathIndex + 1
		if next >= len(p.Segments) {
			// The last segment is never judged, a late release still
			// completes the path.
			lane := a.Lane()
			a.State = Hit
			events = append(events, Event{
				Index: a.Index,
				Lane:  lane,
				Kind:  Completed,
				Time:  in.Time,
			})
			break
		}
		seg := p.Segments[next]
		d := in.Time - seg.Time
		if d < 0 {
			d = -d
		}
		if d <= TransitionWindow {
			a.PathIndex = next
			events = append(events, Event{
				Index:     a.Index,
				Lane:      seg.Lane,
				Kind:      Transition,
				Judgement: judge.PathTransition(seg.Time, in.Time),
				Weight:    judge.PathWeight,
				Time:      in.Time,
			})
		}
		break
	}
	return events
}
