// Package clock provides the playback position of a track. Every judgement
// is made against a time read from a Clock.
package clock

import (
	"errors"
	"sync"
	"time"
)

var ErrNoAudio = errors.New("no audio loaded")

// Clock is a pausable playback position, shifted by a user offset.
type Clock interface {
	// Now is the playback position plus the offset
	Now() time.Duration
	Play() error
	Pause()
	Resume()
	Stop()
	SetOffset(offset time.Duration)
	// Duration is the length of the track
	Duration() time.Duration
}

// WallClock measures playback with the system monotonic clock. Time spent
// paused is excluded from the position.
type WallClock struct {
	mu       sync.Mutex
	now      func() time.Time
	start    time.Time
	playing  bool
	paused   bool
	position time.Duration // Position when paused or stopped
	offset   time.Duration
	duration time.Duration
}

func NewWallClock(duration time.Duration) *WallClock {
	return &WallClock{now: time.Now, duration: duration}
}

func (c *WallClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || c.paused {
		return c.position + c.offset
	}
	return c.now().Sub(c.start) + c.offset
}

func (c *WallClock) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return nil
	}
	c.start = c.now()
	c.position = 0
	c.playing = true
	c.paused = false
	return nil
}

func (c *WallClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || c.paused {
		return
	}
	c.position = c.now().Sub(c.start)
	c.paused = true
}

// Resume moves the baseline forward so the pause is not counted
func (c *WallClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || !c.paused {
		return
	}
	c.start = c.now().Add(-c.position)
	c.paused = false
}

func (c *WallClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.paused = false
	c.position = 0
}

func (c *WallClock) SetOffset(offset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = offset
}

func (c *WallClock) Duration() time.Duration {
	return c.duration
}

// Manual is a clock that only moves when told to. It drives replays and tests.
type Manual struct {
	mu       sync.Mutex
	position time.Duration
	offset   time.Duration
	duration time.Duration
	playing  bool
	paused   bool
}

func NewManual(duration time.Duration) *Manual {
	return &Manual{duration: duration}
}

func (c *Manual) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position + c.offset
}

// Set moves the playback position to t
func (c *Manual) Set(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = t
}

// Advance moves the playback position forward by d unless paused
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing && !c.paused {
		c.position += d
	}
}

func (c *Manual) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = true
	c.paused = false
	return nil
}

func (c *Manual) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

func (c *Manual) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

func (c *Manual) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.paused = false
}

func (c *Manual) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *Manual) SetOffset(offset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = offset
}

func (c *Manual) Duration() time.Duration {
	return c.duration
}
