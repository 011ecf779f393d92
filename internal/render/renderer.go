package render

import (
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/score"
	"git.lost.host/meutraa/orbital/internal/tracker"
)

// Frame is everything drawn for one tick. It is only valid during Render.
type Frame struct {
	Chart    *game.Chart
	Now      time.Duration
	Approach time.Duration
	Active   []tracker.Instance
	Events   []tracker.Event // Judgements made this tick
	Chorus   bool
	Paused   bool
	Score    score.Snapshot
}

// Renderer draws frames. It never feeds anything back to the game.
type Renderer interface {
	Init() error
	Deinit() error
	Render(f *Frame)
}

// Null draws nothing, for replays and headless play
type Null struct{}

func (Null) Init() error     { return nil }
func (Null) Deinit() error   { return nil }
func (Null) Render(f *Frame) {}
