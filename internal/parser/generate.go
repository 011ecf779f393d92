package parser

import (
	"math/rand"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

const (
	generateStart    = 2000 * time.Millisecond
	generateInterval = 500 * time.Millisecond
	generateHold     = 800 * time.Millisecond
)

var difficultyLanes = map[string][]string{
	"easy": {"UL", "UR"},
	"hard": {"UL", "UR", "DL", "DR"},
}

func ms(d time.Duration) *float64 {
	v := float64(d) / float64(time.Millisecond)
	return &v
}

// Generate builds a chart for a track that has none: a note every half
// second, some of them holds or paired taps. The same seed gives the same
// chart.
func Generate(title string, duration time.Duration, difficulty string, seed int64) game.RawChart {
	lanes, ok := difficultyLanes[difficulty]
	if !ok {
		difficulty = "hard"
		lanes = difficultyLanes[difficulty]
	}
	rng := rand.New(rand.NewSource(seed))

	notes := []game.RawNote{}
	for t := generateStart; t < duration-time.Second; t += generateInterval {
		i := rng.Intn(len(lanes))
		lane := lanes[i]
		r := rng.Float64()

		switch {
		case r < 0.1 && t < duration-2*time.Second:
			notes = append(notes, game.RawNote{TimeMs: ms(t), Lane: lane, Type: "COMET", DurationMs: ms(generateHold)})
			t += generateHold
		case r < 0.25 && len(lanes) > 1:
			other := lanes[(i+1)%len(lanes)]
			notes = append(notes,
				game.RawNote{TimeMs: ms(t), Lane: lane, Type: "TWIN"},
				game.RawNote{TimeMs: ms(t), Lane: other, Type: "TWIN"},
			)
		default:
			notes = append(notes, game.RawNote{TimeMs: ms(t), Lane: lane, Type: "PULSE"})
		}
	}

	return game.RawChart{
		Title:      title,
		Artist:     "Auto Generated",
		BPM:        120,
		Difficulty: difficulty,
		Notes:      notes,
	}
}
