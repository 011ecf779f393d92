package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/theme"
	"git.lost.host/meutraa/orbital/internal/tracker"
	"golang.org/x/term"
)

// Terminal draws the reticle with ANSI escapes. Notes fly in along the four
// diagonals towards the receptors around the centre of the screen.
type Terminal struct {
	Theme theme.Theme

	out          io.Writer
	fd           int
	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	drawn        []cell // cells drawn last frame, cleared before the next
	rows, cols   int
}

type cell struct {
	row, col int
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

// receptorRadius is the distance, in rows, of the receptors from the centre
const receptorRadius = 2

var directions = [game.NLanes]struct{ dc, dr int }{
	{-2, -1}, // UL
	{2, -1},  // UR
	{-2, 1},  // DL
	{2, 1},   // DR
}

func NewTerminal(out io.Writer, th theme.Theme) *Terminal {
	fd := -1
	if f, ok := out.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Terminal{Theme: th, out: out, fd: fd, rows: 24, cols: 80}
}

func (r *Terminal) Init() error {
	if r.fd >= 0 && term.IsTerminal(r.fd) {
		state, err := term.MakeRaw(r.fd)
		if nil != err {
			return err
		}
		r.restoreState = state
		if cols, rows, err := term.GetSize(r.fd); nil == err {
			r.cols, r.rows = cols, rows
		}
	}

	fmt.Fprintf(r.out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *Terminal) Deinit() error {
	fmt.Fprintf(r.out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(r.fd, r.restoreState)
}

// AddDecoration shows content for a number of frames, replacing any
// decoration already at that cell
func (r *Terminal) AddDecoration(col, row int, content string, frames int) {
	nd := r.decorations[:0]
	for _, d := range r.decorations {
		if d.X != col || d.Y != row {
			nd = append(nd, d)
		}
	}
	r.decorations = append(nd, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *Terminal) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", 8))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func (r *Terminal) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

// draw fills a cell that is cleared on the next frame
func (r *Terminal) draw(row, col int, message string) {
	if row < 1 || row > r.rows || col < 1 || col > r.cols {
		return
	}
	r.Fill(row, col, message)
	r.drawn = append(r.drawn, cell{row, col})
}

func (r *Terminal) flush() {
	io.WriteString(r.out, r.buffer.String())
	r.buffer.Reset()
}

func (r *Terminal) centre() (int, int) {
	return r.rows / 2, r.cols / 2
}

// position is the cell of a lane at a distance, in rows, from the centre
func (r *Terminal) position(lane game.Lane, distance float64) (int, int) {
	cr, cc := r.centre()
	d := directions[lane]
	return cr + int(float64(d.dr)*distance+0.5*float64(d.dr)), cc + int(float64(d.dc)*distance+float64(d.dc)*0.5)
}

func (r *Terminal) distance(at float64) float64 {
	far := float64(r.rows/2 - 1)
	if far < receptorRadius+1 {
		far = receptorRadius + 1
	}
	return receptorRadius + at*(far-receptorRadius)
}

func (r *Terminal) Render(f *Frame) {
	for _, c := range r.drawn {
		r.Fill(c.row, c.col, " ")
	}
	r.drawn = r.drawn[:0]

	lit := [game.NLanes]bool{}
	for _, a := range f.Active {
		lit[a.Lane()] = lit[a.Lane()] || a.State == tracker.Holding
		r.renderNote(f, a)
	}
	for _, lane := range game.Lanes {
		row, col := r.position(lane, receptorRadius)
		r.draw(row, col, r.Theme.RenderReceptor(lane, lit[lane]))
	}

	cr, cc := r.centre()
	for _, e := range f.Events {
		if e.Scored() {
			r.AddDecoration(cc-3, cr, r.Theme.RenderJudgement(e.Judgement), 60)
		}
	}

	r.renderHUD(f)
	r.tickDecorations()
	r.flush()
}

func (r *Terminal) renderNote(f *Frame, a tracker.Instance) {
	at := func(t float64) float64 {
		return (t - float64(f.Now)) / float64(f.Approach)
	}
	head := a.Note.Start()

	switch n := a.Note.(type) {
	case game.Tap:
		p := at(float64(head.Time))
		if p < 0 || p > 1 {
			return
		}
		row, col := r.position(head.Lane, r.distance(p))
		r.draw(row, col, r.Theme.RenderNote(head.Lane, false))
	case game.Hold:
		start, end := at(float64(head.Time)), at(float64(n.End()))
		if start < 0 {
			start = 0
		}
		if end > 1 {
			end = 1
		}
		for p := start; p <= end; p += 0.05 {
			row, col := r.position(head.Lane, r.distance(p))
			r.draw(row, col, r.Theme.RenderNote(head.Lane, true))
		}
	case game.Path:
		lane := a.Lane()
		next := head.Time
		if a.State == tracker.Holding && a.PathIndex+1 < len(n.Segments) {
			next = n.Segments[a.PathIndex+1].Time
			lane = n.Segments[a.PathIndex+1].Lane
		}
		p := at(float64(next))
		if p < 0 {
			p = 0
		} else if p > 1 {
			return
		}
		row, col := r.position(lane, r.distance(p))
		r.draw(row, col, r.Theme.RenderNote(lane, a.State == tracker.Holding))
	default:
		panic("render: unknown note variant")
	}
}

func (r *Terminal) renderHUD(f *Frame) {
	s := f.Score
	lines := []string{
		f.Chart.Title,
		"",
		fmt.Sprintf("   Score:  %8v", s.Score),
		fmt.Sprintf("   Combo:  %8v", s.Combo),
		fmt.Sprintf("Accuracy:  %7.2f%%", s.Accuracy),
		fmt.Sprintf(" Perfect:  %8v", s.Perfect),
		fmt.Sprintf("    Good:  %8v", s.Good),
		fmt.Sprintf("    Miss:  %8v", s.Miss),
	}
	switch {
	case f.Paused:
		lines = append(lines, "", "    PAUSED    ")
	case f.Chorus:
		lines = append(lines, "", "  ✦ CHORUS ✦  ")
	default:
		lines = append(lines, "", "              ")
	}
	for i, l := range lines {
		r.Fill(2+i, 2, l)
	}
}
