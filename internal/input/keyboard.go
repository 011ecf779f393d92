package input

import (
	"log"
	"time"
	"unicode"

	"git.lost.host/meutraa/orbital/internal/game"
	"github.com/eiannone/keyboard"
)

// KeyboardRouter reads the terminal keyboard. Terminals do not report key
// releases, so a lane is released by typing its key with shift held.
type KeyboardRouter struct {
	keys     [game.NLanes]rune
	now      func() time.Duration
	controls Controls
	done     chan struct{}
	lanes    lanes
}

func NewKeyboardRouter(keys [game.NLanes]rune, now func() time.Duration, controls Controls) *KeyboardRouter {
	return &KeyboardRouter{keys: keys, now: now, controls: controls}
}

// lane maps a rune to its lane and whether it is a release
func (r *KeyboardRouter) lane(c rune) (game.Lane, game.Action, bool) {
	for i, k := range r.keys {
		if c == k {
			return game.Lane(i), game.Press, true
		}
		if c == unicode.ToUpper(k) && c != k {
			return game.Lane(i), game.Release, true
		}
	}
	return 0, game.Press, false
}

func (r *KeyboardRouter) handle(q *Queue, ev keyboard.KeyEvent) {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		if nil != r.controls.Quit {
			r.controls.Quit()
		}
		return
	case keyboard.KeySpace:
		if nil != r.controls.Pause {
			r.controls.Pause()
		}
		return
	}
	lane, action, ok := r.lane(ev.Rune)
	if !ok {
		return
	}
	if action == game.Press && !r.lanes.press(lane) {
		return
	}
	if action == game.Release && !r.lanes.release(lane) {
		return
	}
	q.Push(game.Input{Lane: lane, Action: action, Time: r.now()})
}

func (r *KeyboardRouter) Start(q *Queue) error {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return err
	}
	done := make(chan struct{})
	r.done = done
	go func() {
		for {
			select {
			case <-done:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if nil != ev.Err {
					log.Println("unable to read keyboard input", ev.Err)
					return
				}
				r.handle(q, ev)
			}
		}
	}()
	return nil
}

func (r *KeyboardRouter) Close() error {
	if nil != r.done {
		close(r.done)
		r.done = nil
	}
	return keyboard.Close()
}
