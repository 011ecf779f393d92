package score

import (
	"math"

	"git.lost.host/meutraa/orbital/internal/game"
)

var baseScores = [...]int{
	game.Perfect: 1000,
	game.Good:    500,
	game.Miss:    0,
}

// Counts is the number of judgements of each kind
type Counts struct {
	Perfect, Good, Miss int
}

func (c Counts) Total() int {
	return c.Perfect + c.Good + c.Miss
}

// Scorer accumulates judgements into score, combo and counts. It is only
// changed through Record.
type Scorer struct {
	score      int
	combo      int
	maxCombo   int
	totalNotes int
	counts     Counts
}

func New(totalNotes int) *Scorer {
	return &Scorer{totalNotes: totalNotes}
}

// Reset clears all state for a new session
func (s *Scorer) Reset(totalNotes int) {
	*s = Scorer{totalNotes: totalNotes}
}

// Gain is the score a judgement is worth at a given combo. The combo
// multiplier grows by a tenth every ten combo and is kept in integer tenths
// so the result does not depend on float rounding.
func Gain(j game.Judgement, combo int, weight float64) int {
	tenths := 10 + combo/10
	return int(math.Floor(float64(baseScores[j]*tenths) * weight / 10))
}

// Record adds a judgement with a weight, 1 for a whole note. It returns the
// score gained.
func (s *Scorer) Record(j game.Judgement, weight float64) int {
	gain := Gain(j, s.combo, weight)
	s.score += gain

	switch j {
	case game.Perfect:
		s.counts.Perfect++
	case game.Good:
		s.counts.Good++
	case game.Miss:
		s.counts.Miss++
	}

	if j == game.Miss {
		s.combo = 0
	} else {
		s.combo++
		if s.combo > s.maxCombo {
			s.maxCombo = s.combo
		}
	}
	return gain
}

func (s *Scorer) Score() int      { return s.score }
func (s *Scorer) Combo() int      { return s.combo }
func (s *Scorer) MaxCombo() int   { return s.maxCombo }
func (s *Scorer) TotalNotes() int { return s.totalNotes }
func (s *Scorer) Counts() Counts  { return s.counts }

// Accuracy is a percentage where a perfect is worth 1 and a good half.
// With nothing judged yet it is 100.
func (s *Scorer) Accuracy() float64 {
	total := s.counts.Total()
	if total == 0 {
		return 100
	}
	weighted := float64(s.counts.Perfect) + float64(s.counts.Good)*0.5
	return weighted / float64(total) * 100
}

var ranks = []struct {
	Accuracy float64
	Rank     string
}{
	{100, "S"},
	{95, "A"},
	{85, "B"},
	{70, "C"},
}

// RankOf maps an accuracy to a rank letter
func RankOf(accuracy float64) string {
	for _, r := range ranks {
		if accuracy >= r.Accuracy {
			return r.Rank
		}
	}
	return "D"
}

func (s *Scorer) Rank() string {
	return RankOf(s.Accuracy())
}

func (s *Scorer) FullCombo() bool {
	return s.counts.Miss == 0
}

func (s *Scorer) AllPerfect() bool {
	return s.counts.Miss == 0 && s.counts.Good == 0
}

// Snapshot is the score state handed to the renderer each frame
type Snapshot struct {
	Score    int
	Combo    int
	MaxCombo int
	Counts
	Accuracy float64
}

func (s *Scorer) Snapshot() Snapshot {
	return Snapshot{
		Score:    s.score,
		Combo:    s.combo,
		MaxCombo: s.maxCombo,
		Counts:   s.counts,
		Accuracy: s.Accuracy(),
	}
}

// Result is the summary of a finished session
type Result struct {
	Score      int
	MaxCombo   int
	Accuracy   float64
	Perfect    int
	Good       int
	Miss       int
	Rank       string
	FullCombo  bool
	AllPerfect bool
}

func (s *Scorer) Result() Result {
	return Result{
		Score:      s.score,
		MaxCombo:   s.maxCombo,
		Accuracy:   s.Accuracy(),
		Perfect:    s.counts.Perfect,
		Good:       s.counts.Good,
		Miss:       s.counts.Miss,
		Rank:       s.Rank(),
		FullCombo:  s.FullCombo(),
		AllPerfect: s.AllPerfect(),
	}
}
