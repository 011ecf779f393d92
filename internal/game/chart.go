package game

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Chart is the schedule of notes for one track. Notes are sorted by their
// start time and a Chart is never mutated once loaded.
type Chart struct {
	Title      string
	Artist     string
	Credit     string
	Difficulty string
	BPM        float64
	Offset     time.Duration
	Notes      []Note
	Sections   []Section // Chorus sections, only used for presentation
}

// Section is a chorus time range, inclusive on both ends.
type Section struct {
	Start, End time.Duration
}

func (s Section) Contains(t time.Duration) bool {
	return t >= s.Start && t <= s.End
}

// RawChart is the chart as it is stored on disk. Times are milliseconds.
type RawChart struct {
	Title          string       `json:"title"`
	Artist         string       `json:"artist,omitempty"`
	Credit         string       `json:"credit,omitempty"`
	Difficulty     string       `json:"difficulty,omitempty"`
	BPM            float64      `json:"bpm"`
	OffsetMs       float64      `json:"offset"`
	Notes          []RawNote    `json:"notes"`
	ChorusSections []RawSection `json:"chorusSections,omitempty"`
}

type RawNote struct {
	TimeMs     *float64     `json:"timeMs"`
	Lane       string       `json:"lane"`
	Type       string       `json:"type"`
	DurationMs *float64     `json:"durationMs,omitempty"`
	ArcPath    []RawSegment `json:"arcPath,omitempty"`
}

type RawSegment struct {
	TimeMs *float64 `json:"timeMs"`
	Lane   string   `json:"lane"`
}

type RawSection struct {
	StartMs float64 `json:"startMs"`
	EndMs   float64 `json:"endMs"`
}

// MalformedChartError reports the first invalid note of a raw chart.
type MalformedChartError struct {
	Index  int // Index of the note in the raw chart, -1 for the chart itself
	Field  string
	Reason string
}

func (e *MalformedChartError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed chart: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed chart: note %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Milliseconds converts a chart millisecond value to a Duration
func Milliseconds(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Load validates a raw chart and builds its note schedule. Notes are stably
// sorted by time so notes sharing a time keep their chart order.
func Load(raw RawChart) (Chart, error) {
	if raw.Notes == nil {
		return Chart{}, &MalformedChartError{Index: -1, Field: "notes", Reason: "missing"}
	}
	notes := make([]Note, 0, len(raw.Notes))
	for i, rn := range raw.Notes {
		note, err := loadNote(i, rn)
		if nil != err {
			return Chart{}, err
		}
		notes = append(notes, note)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Start().Time < notes[j].Start().Time
	})

	sections := make([]Section, 0, len(raw.ChorusSections))
	for _, s := range raw.ChorusSections {
		if s.EndMs < s.StartMs {
			return Chart{}, &MalformedChartError{Index: -1, Field: "chorusSections", Reason: "section ends before it starts"}
		}
		sections = append(sections, Section{Start: Milliseconds(s.StartMs), End: Milliseconds(s.EndMs)})
	}

	return Chart{
		Title:      raw.Title,
		Artist:     raw.Artist,
		Credit:     raw.Credit,
		Difficulty: raw.Difficulty,
		BPM:        raw.BPM,
		Offset:     Milliseconds(raw.OffsetMs),
		Notes:      notes,
		Sections:   sections,
	}, nil
}

func loadTime(i int, field string, ms *float64) (time.Duration, error) {
	if ms == nil {
		return 0, &MalformedChartError{Index: i, Field: field, Reason: "missing"}
	}
	if *ms < 0 {
		return 0, &MalformedChartError{Index: i, Field: field, Reason: fmt.Sprintf("negative time %v", *ms)}
	}
	return Milliseconds(*ms), nil
}

func loadLane(i int, field, s string) (Lane, error) {
	if s == "" {
		return 0, &MalformedChartError{Index: i, Field: field, Reason: "missing"}
	}
	lane, ok := ParseLane(s)
	if !ok {
		return 0, &MalformedChartError{Index: i, Field: field, Reason: fmt.Sprintf("unknown lane %q", s)}
	}
	return lane, nil
}

func loadNote(i int, rn RawNote) (Note, error) {
	t, err := loadTime(i, "timeMs", rn.TimeMs)
	if nil != err {
		return nil, err
	}
	lane, err := loadLane(i, "lane", rn.Lane)
	if nil != err {
		return nil, err
	}
	head := Head{Time: t, Lane: lane}

	switch strings.ToUpper(rn.Type) {
	case "PULSE", "TAP":
		return Tap{Head: head}, nil
	case "TWIN":
		return Tap{Head: head, Paired: true}, nil
	case "COMET", "HOLD":
		d, err := loadTime(i, "durationMs", rn.DurationMs)
		if nil != err {
			return nil, err
		}
		if d == 0 {
			return nil, &MalformedChartError{Index: i, Field: "durationMs", Reason: "zero length hold"}
		}
		return Hold{Head: head, Duration: d}, nil
	case "ARC", "PATH":
		if len(rn.ArcPath) == 0 {
			return nil, &MalformedChartError{Index: i, Field: "arcPath", Reason: "missing"}
		}
		segments := make([]Segment, len(rn.ArcPath))
		for j, rs := range rn.ArcPath {
			st, err := loadTime(i, fmt.Sprintf("arcPath[%d].timeMs", j), rs.TimeMs)
			if nil != err {
				return nil, err
			}
			sl, err := loadLane(i, fmt.Sprintf("arcPath[%d].lane", j), rs.Lane)
			if nil != err {
				return nil, err
			}
			if j > 0 && st < segments[j-1].Time {
				return nil, &MalformedChartError{Index: i, Field: "arcPath", Reason: "segments out of order"}
			}
			segments[j] = Segment{Time: st, Lane: sl}
		}
		return Path{Head: head, Segments: segments}, nil
	case "":
		return nil, &MalformedChartError{Index: i, Field: "type", Reason: "missing"}
	}
	return nil, &MalformedChartError{Index: i, Field: "type", Reason: fmt.Sprintf("unknown note kind %q", rn.Type)}
}

// Sorted reports whether the notes are in non-decreasing time order
func (c *Chart) Sorted() bool {
	return sort.SliceIsSorted(c.Notes, func(i, j int) bool {
		return c.Notes[i].Start().Time < c.Notes[j].Start().Time
	})
}

// End is the time the last note of the chart resolves.
func (c *Chart) End() time.Duration {
	var end time.Duration
	for _, n := range c.Notes {
		t := n.Start().Time
		switch n := n.(type) {
		case Tap:
		case Hold:
			t = n.End()
		case Path:
			t = n.Segments[len(n.Segments)-1].Time
		default:
			panic("game: unknown note variant")
		}
		if t > end {
			end = t
		}
	}
	return end
}

// InChorus reports whether t falls in any chorus section.
func (c *Chart) InChorus(t time.Duration) bool {
	for _, s := range c.Sections {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// Counts returns the number of taps, holds and paths of the chart
func (c *Chart) Counts() (taps, holds, paths int) {
	for _, n := range c.Notes {
		switch n.(type) {
		case Tap:
			taps++
		case Hold:
			holds++
		case Path:
			paths++
		default:
			panic("game: unknown note variant")
		}
	}
	return
}
