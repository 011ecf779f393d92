package clock

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// AudioClock plays a track through the speaker and keeps a WallClock in
// step with it, so the position does not jump with the speaker buffer.
type AudioClock struct {
	*WallClock

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
}

// Decode opens an mp3, ogg or wav file.
func Decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio file %v", file)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %v: %w", file, err)
	}
	return streamer, format, nil
}

// NewAudioClock decodes a track and initialises the speaker for it. volume
// is a percentage.
func NewAudioClock(file string, volume int) (*AudioClock, error) {
	streamer, format, err := Decode(file)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, fmt.Errorf("unable to initialise speaker: %w", err)
	}
	ctrl := &beep.Ctrl{Streamer: streamer}
	return &AudioClock{
		WallClock: NewWallClock(format.SampleRate.D(streamer.Len())),
		streamer:  streamer,
		format:    format,
		ctrl:      ctrl,
		volume:    Volume(ctrl, volume),
	}, nil
}

// Volume scales a streamer by a percentage, 0 is silent
func Volume(s beep.Streamer, percent int) *effects.Volume {
	if percent > 100 {
		percent = 100
	}
	v := &effects.Volume{Streamer: s, Base: 2}
	if percent <= 0 {
		v.Silent = true
	} else {
		v.Volume = math.Log2(float64(percent) / 100)
	}
	return v
}

func (c *AudioClock) Play() error {
	if nil == c.streamer {
		return ErrNoAudio
	}
	speaker.Lock()
	err := c.streamer.Seek(0)
	c.ctrl.Streamer = c.streamer
	c.ctrl.Paused = false
	speaker.Unlock()
	if nil != err {
		return fmt.Errorf("unable to rewind track: %w", err)
	}
	speaker.Play(c.volume)
	return c.WallClock.Play()
}

func (c *AudioClock) Pause() {
	speaker.Lock()
	c.ctrl.Paused = true
	speaker.Unlock()
	c.WallClock.Pause()
}

func (c *AudioClock) Resume() {
	speaker.Lock()
	c.ctrl.Paused = false
	speaker.Unlock()
	c.WallClock.Resume()
}

// Stop detaches the track, which drops it from the speaker
func (c *AudioClock) Stop() {
	speaker.Lock()
	c.ctrl.Streamer = nil
	speaker.Unlock()
	c.WallClock.Stop()
}

// Close stops playback and releases the decoded track
func (c *AudioClock) Close() error {
	c.Stop()
	if nil == c.streamer {
		return nil
	}
	err := c.streamer.Close()
	c.streamer = nil
	return err
}
