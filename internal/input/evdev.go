//go:build linux

package input

import (
	"encoding/binary"
	"errors"
	"log"
	"os"
	"syscall"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey    = 0x01
	keyEsc   = 1
	keySpace = 57
)

var keyCodes = map[rune]uint16{
	'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20, 'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
	'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34, 'h': 35, 'j': 36, 'k': 37, 'l': 38,
	'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48, 'n': 49, 'm': 50,
}

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// EvdevRouter reads a linux input device, which reports real key releases.
type EvdevRouter struct {
	device   string
	codes    map[uint16]game.Lane
	now      func() time.Duration
	controls Controls
	file     *os.File
	lanes    lanes
}

func NewEvdevRouter(device string, keys [game.NLanes]rune, now func() time.Duration, controls Controls) (*EvdevRouter, error) {
	codes := make(map[uint16]game.Lane, game.NLanes)
	for i, k := range keys {
		code, ok := keyCodes[k]
		if !ok {
			return nil, errors.New("no evdev key code for " + string(k))
		}
		codes[code] = game.Lane(i)
	}
	return &EvdevRouter{device: device, codes: codes, now: now, controls: controls}, nil
}

func (r *EvdevRouter) handle(q *Queue, ev keyEvent) {
	if ev.Type != evKey {
		return
	}
	// 0 release, 1 press, 2 autorepeat
	switch {
	case ev.Code == keyEsc && ev.Value == 1:
		if nil != r.controls.Quit {
			r.controls.Quit()
		}
		return
	case ev.Code == keySpace && ev.Value == 1:
		if nil != r.controls.Pause {
			r.controls.Pause()
		}
		return
	}
	lane, ok := r.codes[ev.Code]
	if !ok {
		return
	}
	switch ev.Value {
	case 1:
		if r.lanes.press(lane) {
			q.Push(game.Input{Lane: lane, Action: game.Press, Time: r.now()})
		}
	case 0:
		if r.lanes.release(lane) {
			q.Push(game.Input{Lane: lane, Action: game.Release, Time: r.now()})
		}
	}
}

func (r *EvdevRouter) Start(q *Queue) error {
	file, err := os.Open(r.device)
	if err != nil {
		return err
	}
	r.file = file
	go func() {
		var ev keyEvent
		for {
			if err := binary.Read(file, binary.LittleEndian, &ev); nil != err {
				if !errors.Is(err, os.ErrClosed) {
					log.Println(err, "unable to read keyboard input")
				}
				return
			}
			r.handle(q, ev)
		}
	}()
	return nil
}

func (r *EvdevRouter) Close() error {
	if nil == r.file {
		return nil
	}
	return r.file.Close()
}
