package game

import "time"

// Note is a chart note descriptor. It is one of Tap, Hold or Path.
type Note interface {
	// Start is the time and lane the note is first struck on
	Start() Head
	isNote()
}

type Head struct {
	Time time.Duration // The time the note should be hit
	Lane Lane
}

func (h Head) Start() Head { return h }

// Tap is struck once. Paired taps share their time with a tap on another lane.
type Tap struct {
	Head
	Paired bool
}

// Hold is pressed at Time and released at Time+Duration.
type Hold struct {
	Head
	Duration time.Duration
}

func (h Hold) End() time.Duration {
	return h.Time + h.Duration
}

// Segment is a point on a path note where its target lane changes.
type Segment struct {
	Time time.Duration
	Lane Lane
}

// Path is held while its target lane moves through Segments. The first
// segment is the head of the note.
type Path struct {
	Head
	Segments []Segment
}

func (Tap) isNote()  {}
func (Hold) isNote() {}
func (Path) isNote() {}

// Kind is a short name for a note variant, used for logs and counts
func Kind(n Note) string {
	switch n.(type) {
	case Tap:
		return "tap"
	case Hold:
		return "hold"
	case Path:
		return "path"
	}
	panic("game: unknown note variant")
}
