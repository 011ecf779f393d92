// Package engine runs a play session: once per frame it reads the clock,
// advances the notes, applies the queued input and hands the result to the
// renderer, until the track is over.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"git.lost.host/meutraa/orbital/internal/clock"
	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/input"
	"git.lost.host/meutraa/orbital/internal/render"
	"git.lost.host/meutraa/orbital/internal/score"
	"git.lost.host/meutraa/orbital/internal/tracker"
)

var (
	ErrClockRegression = errors.New("clock moved backwards")
	ErrStopped         = errors.New("session stopped")
)

// Outro is how long the session runs past the end of the track
const Outro = 2 * time.Second

// DefaultFramePeriod is the time between two ticks
const DefaultFramePeriod = 4 * time.Millisecond

// ResultSink receives the summary of a finished session with the inputs
// that were played.
type ResultSink interface {
	Submit(r score.Result, inputs []game.Input) error
}

type ResultSinkFunc func(r score.Result, inputs []game.Input) error

func (f ResultSinkFunc) Submit(r score.Result, inputs []game.Input) error {
	return f(r, inputs)
}

type Options struct {
	Approach    time.Duration
	FramePeriod time.Duration
	Renderer    render.Renderer
	Sink        ResultSink
}

// Controller owns every component of one session.
type Controller struct {
	chart       *game.Chart
	clock       clock.Clock
	queue       *input.Queue
	tracker     *tracker.Tracker
	scorer      *score.Scorer
	renderer    render.Renderer
	sink        ResultSink
	framePeriod time.Duration

	paused  atomic.Bool
	stopped atomic.Bool

	started bool
	last    time.Duration
	chorus  bool
	inputs  []game.Input // Every input dispatched this session
	events  []tracker.Event
	result  score.Result
}

func New(chart *game.Chart, c clock.Clock, q *input.Queue, opts Options) *Controller {
	if opts.Approach == 0 {
		opts.Approach = tracker.DefaultApproach
	}
	if opts.FramePeriod == 0 {
		opts.FramePeriod = DefaultFramePeriod
	}
	if nil == opts.Renderer {
		opts.Renderer = render.Null{}
	}
	return &Controller{
		chart:       chart,
		clock:       c,
		queue:       q,
		tracker:     tracker.New(chart, opts.Approach),
		scorer:      score.New(len(chart.Notes)),
		renderer:    opts.Renderer,
		sink:        opts.Sink,
		framePeriod: opts.FramePeriod,
	}
}

// Start resets the session and starts the clock
func (c *Controller) Start() error {
	c.tracker.Reset()
	c.scorer.Reset(len(c.chart.Notes))
	c.queue.Reset()
	c.inputs = c.inputs[:0]
	c.started = false
	c.chorus = false
	c.paused.Store(false)
	c.stopped.Store(false)
	if err := c.clock.Play(); nil != err {
		return fmt.Errorf("unable to start clock: %w", err)
	}
	taps, holds, paths := c.chart.Counts()
	log.Printf("session started: %v (%v taps, %v holds, %v paths)", c.chart.Title, taps, holds, paths)
	return nil
}

func (c *Controller) Pause() {
	if c.stopped.Load() || c.paused.Swap(true) {
		return
	}
	c.clock.Pause()
	log.Println("session paused")
}

// Resume restarts the clock. Input typed while paused is dropped.
func (c *Controller) Resume() {
	if c.stopped.Load() || !c.paused.Load() {
		return
	}
	c.queue.Reset()
	c.clock.Resume()
	c.paused.Store(false)
	log.Println("session resumed")
}

func (c *Controller) TogglePause() {
	if c.paused.Load() {
		c.Resume()
	} else {
		c.Pause()
	}
}

func (c *Controller) Paused() bool {
	return c.paused.Load()
}

// Stop ends the session at the next tick. Nothing played so far is kept.
func (c *Controller) Stop() {
	if c.stopped.Swap(true) {
		return
	}
	c.clock.Stop()
}

// discard drops all note and input state of the session
func (c *Controller) discard() {
	c.tracker.Reset()
	c.queue.Reset()
	c.inputs = c.inputs[:0]
}

func (c *Controller) record(events []tracker.Event) {
	for _, e := range events {
		if e.Scored() {
			c.scorer.Record(e.Judgement, e.Weight)
		}
		c.events = append(c.events, e)
	}
}

func (c *Controller) render(now time.Duration, events []tracker.Event, paused bool) {
	c.renderer.Render(&render.Frame{
		Chart:    c.chart,
		Now:      now,
		Approach: c.tracker.Approach(),
		Active:   c.tracker.Active(),
		Events:   events,
		Chorus:   c.chorus,
		Paused:   paused,
		Score:    c.scorer.Snapshot(),
	})
}

// Tick runs one frame. done is true once the session is over, either with a
// result or with an error.
func (c *Controller) Tick() (done bool, err error) {
	if c.stopped.Load() {
		c.discard()
		return true, ErrStopped
	}
	if c.paused.Load() {
		c.render(c.last, nil, true)
		return false, nil
	}

	now := c.clock.Now()
	if c.started && now < c.last {
		log.Printf("clock moved from %v to %v, aborting session", c.last, now)
		c.Stop()
		c.discard()
		return true, fmt.Errorf("%w: %v to %v", ErrClockRegression, c.last, now)
	}
	c.started = true
	c.last = now

	c.chorus = c.chart.InChorus(now)

	c.events = c.events[:0]
	c.record(c.tracker.Advance(now))
	for _, in := range c.queue.Drain() {
		c.inputs = append(c.inputs, in)
		c.record(c.tracker.Apply(in))
	}

	c.render(now, c.events, false)

	if now > c.clock.Duration()+Outro {
		c.finish()
		return true, nil
	}
	return false, nil
}

func (c *Controller) finish() {
	c.result = c.scorer.Result()
	c.stopped.Store(true)
	c.clock.Stop()
	log.Printf("session finished: score %v, accuracy %.2f%%, rank %v", c.result.Score, c.result.Accuracy, c.result.Rank)
	if nil != c.sink {
		if err := c.sink.Submit(c.result, c.Inputs()); nil != err {
			log.Println("unable to submit result", err)
		}
	}
}

// Run starts the session and ticks it every frame period until it finishes,
// is stopped or ctx is done.
func (c *Controller) Run(ctx context.Context) (score.Result, error) {
	if err := c.Start(); nil != err {
		return score.Result{}, err
	}
	ticker := time.NewTicker(c.framePeriod)
	defer ticker.Stop()
	for {
		done, err := c.Tick()
		if done {
			if nil != err {
				return score.Result{}, err
			}
			return c.result, nil
		}
		select {
		case <-ctx.Done():
			c.Stop()
			c.discard()
			return score.Result{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Inputs returns a copy of the inputs dispatched this session
func (c *Controller) Inputs() []game.Input {
	ins := make([]game.Input, len(c.inputs))
	copy(ins, c.inputs)
	return ins
}

// Snapshot is the current score state
func (c *Controller) Snapshot() score.Snapshot {
	return c.scorer.Snapshot()
}

// Chorus reports whether the last tick was in a chorus section
func (c *Controller) Chorus() bool {
	return c.chorus
}
