package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.lost.host/meutraa/orbital/internal/clock"
	"git.lost.host/meutraa/orbital/internal/config"
	"git.lost.host/meutraa/orbital/internal/engine"
	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/input"
	"git.lost.host/meutraa/orbital/internal/parser"
	"git.lost.host/meutraa/orbital/internal/render"
	"git.lost.host/meutraa/orbital/internal/score"
	"git.lost.host/meutraa/orbital/internal/theme"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

// trackLength decodes a track only to measure it
func trackLength(file string) (time.Duration, error) {
	streamer, format, err := clock.Decode(file)
	if nil != err {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

// loadChart reads the chart of a song, generating one from the track length
// when the song has none. info.txt fills in missing metadata.
func loadChart(psr parser.Parser, song parser.Song, length time.Duration, cfg *config.Config) (*game.Chart, error) {
	info, err := song.Info()
	if nil != err {
		log.Println("unable to read song info", err)
	}
	title := info.Title
	if title == "" {
		title = song.Title()
	}

	var chart game.Chart
	if song.ChartFile != "" {
		chart, err = psr.Parse(song.ChartFile)
		if nil != err {
			return nil, err
		}
	} else {
		seed := cfg.GenerationSeed()
		log.Printf("no chart in %v, generating %v chart with seed %v", song.Directory, cfg.Difficulty, seed)
		chart, err = game.Load(parser.Generate(title, length, cfg.Difficulty, seed))
		if nil != err {
			return nil, fmt.Errorf("unable to generate chart: %w", err)
		}
	}

	if chart.Title == "" {
		chart.Title = title
	}
	if chart.Artist == "" || (chart.Artist == "Auto Generated" && info.Artist != "") {
		chart.Artist = info.Artist
	}
	if chart.Credit == "" {
		chart.Credit = info.Credit
	}
	return &chart, nil
}

func printResult(r score.Result) {
	fmt.Printf("%v\n", r.Rank)
	fmt.Printf("   Score:  %8v\n", r.Score)
	fmt.Printf("Accuracy:  %7.2f%%\n", r.Accuracy)
	fmt.Printf("   Combo:  %8v\n", r.MaxCombo)
	fmt.Printf(" Perfect:  %8v\n", r.Perfect)
	fmt.Printf("    Good:  %8v\n", r.Good)
	fmt.Printf("    Miss:  %8v\n", r.Miss)
	switch {
	case r.AllPerfect:
		fmt.Println("ALL PERFECT")
	case r.FullCombo:
		fmt.Println("FULL COMBO")
	}
}

func replay(store *score.Store, chart *game.Chart, length time.Duration, cfg *config.Config) error {
	history, err := store.Load(chart)
	if nil != err {
		return err
	}
	if len(history) == 0 {
		return errors.New("no stored session for this chart")
	}
	h := history[0]
	log.Printf("replaying session %v from %v", h.ID, h.PlayedAt)
	result, err := engine.Replay(chart, length, h.Inputs, cfg.Approach())
	if nil != err {
		return err
	}
	printResult(result)
	if result != h.Result {
		fmt.Printf("stored result differs: score %v, accuracy %.2f%%\n", h.Result.Score, h.Result.Accuracy)
	}
	return nil
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	// The terminal belongs to the renderer, so log elsewhere
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	// Ensure our Default implementations are used as interfaces
	var psr parser.Parser = &parser.DefaultParser{}
	var th theme.Theme = &theme.DefaultTheme{}

	song, err := parser.Find(cfg.Directory)
	if nil != err {
		return err
	}

	var clk clock.Clock
	var length time.Duration
	if song.AudioFile != "" {
		if cfg.Silent || cfg.Replay {
			length, err = trackLength(song.AudioFile)
			if nil != err {
				return err
			}
		} else {
			log.Printf("opening %v", song.AudioFile)
			ac, err := clock.NewAudioClock(song.AudioFile, cfg.Volume)
			if nil != err {
				return err
			}
			defer ac.Close()
			clk = ac
			length = ac.Duration()
		}
	}

	chart, err := loadChart(psr, song, length, cfg)
	if nil != err {
		return err
	}
	if length == 0 {
		length = chart.End()
	}
	if nil == clk {
		clk = clock.NewWallClock(length)
	}
	clk.SetOffset(cfg.Offset)
	log.Printf("loaded %v (%v notes, %v)", chart.Title, len(chart.Notes), length)

	store, err := score.Open(cfg.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	if cfg.Replay {
		return replay(store, chart, length, cfg)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := render.NewTerminal(os.Stdout, th)
	q := &input.Queue{}
	ctl := engine.New(chart, clk, q, engine.Options{
		Approach:    cfg.Approach(),
		FramePeriod: cfg.FramePeriod,
		Renderer:    r,
		Sink: engine.ResultSinkFunc(func(res score.Result, inputs []game.Input) error {
			id, err := store.Save(chart, res, inputs)
			if nil == err {
				log.Printf("stored session %v", id)
			}
			return err
		}),
	})

	controls := input.Controls{
		Quit: func() {
			cancel()
			ctl.Stop()
		},
		Pause: ctl.TogglePause,
	}
	var router input.Router
	if cfg.Device != "" {
		router, err = input.NewEvdevRouter(cfg.Device, cfg.Keys(), clk.Now, controls)
		if nil != err {
			return err
		}
	} else {
		router = input.NewKeyboardRouter(cfg.Keys(), clk.Now, controls)
	}
	if err := router.Start(q); nil != err {
		return fmt.Errorf("unable to open input: %w", err)
	}
	defer func() {
		if err := router.Close(); nil != err {
			log.Println("unable to close input", err)
		}
	}()

	best, err := store.Best(chart)
	if nil != err {
		log.Println("unable to read best score", err)
	}

	if err := r.Init(); nil != err {
		return err
	}
	result, err := func() (score.Result, error) {
		select {
		case <-ctx.Done():
			return score.Result{}, ctx.Err()
		case <-time.After(cfg.Delay):
		}
		return ctl.Run(ctx)
	}()
	// Restore the terminal state before printing anything
	if err := r.Deinit(); nil != err {
		log.Println("unable to restore terminal", err)
	}

	switch {
	case errors.Is(err, engine.ErrStopped), errors.Is(err, context.Canceled):
		fmt.Println("stopped")
		return nil
	case nil != err:
		return err
	}

	printResult(result)
	if nil != best && result.Score > best.Result.Score {
		fmt.Printf("new best, previous %v\n", best.Result.Score)
	}
	return nil
}
