package judge

import (
	"testing"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func tap(t int) game.Tap {
	return game.Tap{Head: game.Head{Time: ms(t), Lane: game.UpLeft}}
}

var strikeTests = []struct {
	at       int
	expected game.Judgement
	ok       bool
}{
	{1000, game.Perfect, true},
	{1035, game.Perfect, true},
	{965, game.Perfect, true},
	{1040, game.Perfect, true},
	{1041, game.Good, true},
	{1090, game.Good, true},
	{910, game.Good, true},
	{1100, game.Good, true},
	{1140, game.Miss, true},
	{850, game.Miss, true},
	{1150, game.Miss, true},
	{1151, game.Miss, false},
	{1200, game.Miss, false},
	{800, game.Miss, false},
}

func TestStrike(t *testing.T) {
	note := tap(1000)
	for _, test := range strikeTests {
		j, ok := Strike(note, ms(test.at))
		if ok != test.ok || (ok && j != test.expected) {
			t.Errorf("strike at %v: got (%v, %v), expected (%v, %v)", test.at, j, ok, test.expected, test.ok)
		}
	}
}

func TestHoldRelease(t *testing.T) {
	note := game.Hold{Head: game.Head{Time: ms(1000)}, Duration: ms(800)}
	tests := map[int]game.Judgement{
		1800: game.Perfect,
		1760: game.Perfect,
		1700: game.Good,
		1901: game.Miss,
		1500: game.Miss,
		9000: game.Miss,
	}
	for at, expected := range tests {
		if j := HoldRelease(note, ms(at)); j != expected {
			t.Errorf("release at %v: got %v, expected %v", at, j, expected)
		}
	}
}

func TestPathTransition(t *testing.T) {
	tests := map[int]game.Judgement{
		2000: game.Perfect,
		2060: game.Perfect,
		1940: game.Perfect,
		2061: game.Good,
		2150: game.Good,
		2151: game.Miss,
		2200: game.Miss,
	}
	for at, expected := range tests {
		if j := PathTransition(ms(2000), ms(at)); j != expected {
			t.Errorf("transition at %v: got %v, expected %v", at, j, expected)
		}
	}
}

func TestForcedMiss(t *testing.T) {
	if ForcedMiss() != game.Miss {
		t.Fail()
	}
}

func TestExpiredAgreesWithStrike(t *testing.T) {
	note := tap(1000)
	for at := 1100; at <= 1200; at++ {
		_, ok := Strike(note, ms(at))
		if ok == Expired(note.Time, ms(at)) {
			t.Errorf("at %v strike ok=%v but expired=%v", at, ok, Expired(note.Time, ms(at)))
		}
	}
}

func BenchmarkJudge(b *testing.B) {
	var j game.Judgement
	for n := 0; n < b.N; n++ {
		j, _ = Judge(ms(12456), ms(12500), 1)
	}
	_ = j
}
