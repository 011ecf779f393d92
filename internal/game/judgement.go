package game

// Judgement is the outcome of judging a note against an event time.
type Judgement uint8

const (
	Perfect Judgement = iota
	Good
	Miss
)

var judgementNames = [...]string{"Perfect", "Good", "Miss"}

func (j Judgement) String() string {
	if int(j) < len(judgementNames) {
		return judgementNames[j]
	}
	return "Unknown"
}
