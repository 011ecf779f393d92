package input

import (
	"testing"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
	"github.com/eiannone/keyboard"
)

func TestQueueNewestWins(t *testing.T) {
	var q Queue
	q.Push(game.Input{Lane: game.UpLeft, Action: game.Press, Time: 1})
	q.Push(game.Input{Lane: game.UpRight, Action: game.Press, Time: 2})
	q.Push(game.Input{Lane: game.UpLeft, Action: game.Release, Time: 3})
	q.Push(game.Input{Lane: game.UpLeft, Action: game.Press, Time: 4})

	ins := q.Drain()
	expected := []game.Input{
		{Lane: game.UpRight, Action: game.Press, Time: 2},
		{Lane: game.UpLeft, Action: game.Release, Time: 3},
		{Lane: game.UpLeft, Action: game.Press, Time: 4},
	}
	if len(ins) != len(expected) {
		t.Fatalf("drained %v, expected %v", ins, expected)
	}
	for i := range ins {
		if ins[i] != expected[i] {
			t.Errorf("input %v is %+v, expected %+v", i, ins[i], expected[i])
		}
	}
	if ins := q.Drain(); ins != nil {
		t.Errorf("queue not empty after drain: %v", ins)
	}
}

func TestKeyboardRouter(t *testing.T) {
	now := time.Duration(0)
	quit, pause := 0, 0
	r := NewKeyboardRouter([game.NLanes]rune{'a', 'k', 'z', 'm'}, func() time.Duration { return now }, Controls{
		Quit:  func() { quit++ },
		Pause: func() { pause++ },
	})
	var q Queue

	steps := []struct {
		ev keyboard.KeyEvent
		at time.Duration
	}{
		{keyboard.KeyEvent{Rune: 'k'}, 10},
		{keyboard.KeyEvent{Rune: 'k'}, 20}, // repeat while held
		{keyboard.KeyEvent{Rune: 'x'}, 25},
		{keyboard.KeyEvent{Rune: 'M'}, 30}, // release of a lane that is up
		{keyboard.KeyEvent{Rune: 'K'}, 40},
		{keyboard.KeyEvent{Key: keyboard.KeySpace}, 50},
		{keyboard.KeyEvent{Key: keyboard.KeyEsc}, 60},
	}
	for _, s := range steps {
		now = s.at
		r.handle(&q, s.ev)
	}

	ins := q.Drain()
	if len(ins) != 2 {
		t.Fatalf("got inputs %+v", ins)
	}
	if ins[0] != (game.Input{Lane: game.UpRight, Action: game.Press, Time: 10}) {
		t.Errorf("press %+v", ins[0])
	}
	if ins[1] != (game.Input{Lane: game.UpRight, Action: game.Release, Time: 40}) {
		t.Errorf("release %+v", ins[1])
	}
	if quit != 1 || pause != 1 {
		t.Errorf("quit %v pause %v", quit, pause)
	}
}
