package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"git.lost.host/meutraa/orbital/internal/clock"
	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/input"
	"git.lost.host/meutraa/orbital/internal/render"
	"git.lost.host/meutraa/orbital/internal/score"
	"git.lost.host/meutraa/orbital/internal/testdata"
	"git.lost.host/meutraa/orbital/internal/tracker"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

type recordingRenderer struct {
	frames   int
	chorus   int
	paused   int
	lastNow  time.Duration
	judged   []tracker.Event
	maxCombo int
}

func (r *recordingRenderer) Init() error   { return nil }
func (r *recordingRenderer) Deinit() error { return nil }
func (r *recordingRenderer) Render(f *render.Frame) {
	r.frames++
	if f.Chorus {
		r.chorus++
	}
	if f.Paused {
		r.paused++
	}
	r.lastNow = f.Now
	r.judged = append(r.judged, f.Events...)
	for _, a := range f.Active {
		if a.State.Terminal() {
			panic("terminal instance handed to the renderer")
		}
	}
}

type recordingSink struct {
	results []score.Result
	inputs  []game.Input
}

func (s *recordingSink) Submit(r score.Result, inputs []game.Input) error {
	s.results = append(s.results, r)
	s.inputs = inputs
	return nil
}

// play ticks a controller every 4ms on a manual clock, pushing each scripted
// input on the first tick at or after its time.
func play(t *testing.T, c *Controller, clk *clock.Manual, q *input.Queue, script []game.Input) (score.Result, error) {
	t.Helper()
	if err := c.Start(); nil != err {
		t.Fatal(err)
	}
	now := time.Duration(0)
	next := 0
	for i := 0; i < 1000000; i++ {
		for next < len(script) && script[next].Time <= now {
			q.Push(script[next])
			next++
		}
		clk.Set(now)
		done, err := c.Tick()
		if done {
			return c.result, err
		}
		now += 4 * time.Millisecond
	}
	t.Fatal("session never finished")
	return score.Result{}, nil
}

var script = []game.Input{
	{Lane: game.UpLeft, Action: game.Press, Time: ms(1010)},      // tap, perfect
	{Lane: game.UpLeft, Action: game.Release, Time: ms(1100)},    // nothing held
	{Lane: game.UpRight, Action: game.Press, Time: ms(2060)},     // paired tap, good
	{Lane: game.DownLeft, Action: game.Press, Time: ms(3000)},    // hold start, perfect
	{Lane: game.DownLeft, Action: game.Release, Time: ms(3800)},  // hold end, perfect
	{Lane: game.DownRight, Action: game.Press, Time: ms(5020)},   // path start, perfect
	{Lane: game.DownRight, Action: game.Release, Time: ms(5510)}, // transition, perfect
	{Lane: game.UpLeft, Action: game.Release, Time: ms(6100)},    // transition, good
	{Lane: game.UpLeft, Action: game.Release, Time: ms(7000)},    // path complete
}

func fixture(t *testing.T) *game.Chart {
	chart, err := testdata.GetChart()
	if nil != err {
		t.Fatal("unable to parse chart", err)
	}
	return chart
}

func TestSession(t *testing.T) {
	chart := fixture(t)
	clk := clock.NewManual(ms(8000))
	q := &input.Queue{}
	r := &recordingRenderer{}
	sink := &recordingSink{}
	c := New(chart, clk, q, Options{Renderer: r, Sink: sink})

	result, err := play(t, c, clk, q, script)
	if nil != err {
		t.Fatal(err)
	}

	// UL 1000 perfect (c1), UR 2000 good (c2), UL 2000 forced miss (c0),
	// hold start and release perfect (c2), path start perfect (c3),
	// transitions perfect and good at half weight (c5), UR 9000 forced miss
	perfect, good, judged := 5.0, 2.0, 9.0
	expected := score.Result{
		Score:      1000 + 500 + 1000 + 1000 + 1000 + 500 + 250,
		MaxCombo:   5,
		Accuracy:   (perfect + good*0.5) / judged * 100,
		Perfect:    5,
		Good:       2,
		Miss:       2,
		Rank:       "D",
		FullCombo:  false,
		AllPerfect: false,
	}
	if result != expected {
		t.Errorf("result %+v\nexpected %+v", result, expected)
	}
	if len(sink.results) != 1 || sink.results[0] != result {
		t.Errorf("sink got %+v", sink.results)
	}
	if len(sink.inputs) != len(script) {
		t.Errorf("sink got %v inputs, expected %v", len(sink.inputs), len(script))
	}
	if r.lastNow <= ms(10000) {
		t.Errorf("session ended at %v, before the outro", r.lastNow)
	}
	if r.chorus == 0 || r.chorus == r.frames {
		t.Errorf("chorus flag set on %v of %v frames", r.chorus, r.frames)
	}
	expired := 0
	for _, e := range r.judged {
		if e.Kind == tracker.Expired {
			expired++
		}
	}
	if expired != 2 {
		t.Errorf("%v forced misses, expected 2", expired)
	}
}

func TestReplayMatchesSession(t *testing.T) {
	chart := fixture(t)
	clk := clock.NewManual(ms(8000))
	q := &input.Queue{}
	sink := &recordingSink{}
	c := New(chart, clk, q, Options{Sink: sink})
	live, err := play(t, c, clk, q, script)
	if nil != err {
		t.Fatal(err)
	}

	replayed, err := Replay(chart, ms(8000), sink.inputs, tracker.DefaultApproach)
	if nil != err {
		t.Fatal(err)
	}
	if replayed != live {
		t.Errorf("replay %+v\nlive   %+v", replayed, live)
	}
}

func TestClockRegressionAborts(t *testing.T) {
	chart := fixture(t)
	clk := clock.NewManual(ms(8000))
	q := &input.Queue{}
	sink := &recordingSink{}
	c := New(chart, clk, q, Options{Sink: sink})
	if err := c.Start(); nil != err {
		t.Fatal(err)
	}
	clk.Set(ms(1000))
	if done, err := c.Tick(); done || nil != err {
		t.Fatalf("tick: %v %v", done, err)
	}
	clk.Set(ms(900))
	done, err := c.Tick()
	if !done || !errors.Is(err, ErrClockRegression) {
		t.Fatalf("expected a clock regression, got %v %v", done, err)
	}
	if len(sink.results) != 0 {
		t.Error("aborted session submitted a result")
	}
	if done, err := c.Tick(); !done || !errors.Is(err, ErrStopped) {
		t.Errorf("aborted session kept ticking: %v %v", done, err)
	}
}

func TestStopDiscards(t *testing.T) {
	chart := fixture(t)
	clk := clock.NewManual(ms(8000))
	q := &input.Queue{}
	sink := &recordingSink{}
	c := New(chart, clk, q, Options{Sink: sink})
	c.Start()
	clk.Set(ms(1000))
	q.Push(game.Input{Lane: game.UpLeft, Action: game.Press, Time: ms(1000)})
	c.Tick()
	c.Stop()
	done, err := c.Tick()
	if !done || !errors.Is(err, ErrStopped) {
		t.Fatalf("expected stop, got %v %v", done, err)
	}
	if len(c.Inputs()) != 0 || len(c.tracker.Active()) != 0 || len(sink.results) != 0 {
		t.Error("stopped session kept state")
	}
}

func TestPauseFreezesSession(t *testing.T) {
	chart := fixture(t)
	clk := clock.NewManual(ms(8000))
	q := &input.Queue{}
	r := &recordingRenderer{}
	c := New(chart, clk, q, Options{Renderer: r})
	c.Start()
	clk.Set(ms(500))
	c.Tick()

	c.Pause()
	if !clk.Paused() || !c.Paused() {
		t.Fatal("pause did not reach the clock")
	}
	q.Push(game.Input{Lane: game.UpLeft, Action: game.Press, Time: ms(1000)})
	for i := 0; i < 10; i++ {
		if done, err := c.Tick(); done || nil != err {
			t.Fatalf("paused tick: %v %v", done, err)
		}
	}
	if r.paused != 10 || r.lastNow != ms(500) {
		t.Errorf("expected 10 frozen frames at 500ms, got %v at %v", r.paused, r.lastNow)
	}

	c.TogglePause()
	if c.Paused() || clk.Paused() {
		t.Fatal("resume did not reach the clock")
	}
	clk.Set(ms(1000))
	c.Tick()
	if len(c.Inputs()) != 0 {
		t.Error("input queued while paused was played")
	}
}

func TestRunCancelled(t *testing.T) {
	chart := fixture(t)
	clk := clock.NewManual(ms(8000))
	c := New(chart, clk, &input.Queue{}, Options{FramePeriod: time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestRunFinishes(t *testing.T) {
	chart := fixture(t)
	clk := clock.NewManual(0)
	clk.Set(ms(20000))
	sink := &recordingSink{}
	c := New(chart, clk, &input.Queue{}, Options{FramePeriod: time.Millisecond, Sink: sink})
	result, err := c.Run(context.Background())
	if nil != err {
		t.Fatal(err)
	}
	if result.Miss != len(chart.Notes) || result.Score != 0 || len(sink.results) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}
