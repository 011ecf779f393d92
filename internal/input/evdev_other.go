//go:build !linux

package input

import (
	"errors"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

type EvdevRouter struct{}

func NewEvdevRouter(device string, keys [game.NLanes]rune, now func() time.Duration, controls Controls) (*EvdevRouter, error) {
	return nil, errors.New("evdev input is only available on linux")
}

func (r *EvdevRouter) Start(q *Queue) error { return nil }
func (r *EvdevRouter) Close() error         { return nil }
