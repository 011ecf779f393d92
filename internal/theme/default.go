package theme

import (
	"fmt"

	"git.lost.host/meutraa/orbital/internal/game"
)

type DefaultTheme struct {
}

func colored(c Color, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) LaneColor(lane game.Lane) Color {
	if !lane.Valid() {
		return white
	}
	return laneColors[lane]
}

func (t *DefaultTheme) RenderNote(lane game.Lane, holding bool) string {
	if holding {
		return colored(t.LaneColor(lane), holdSym)
	}
	return colored(t.LaneColor(lane), noteSym)
}

func (t *DefaultTheme) RenderReceptor(lane game.Lane, lit bool) string {
	if !lane.Valid() {
		return " "
	}
	if lit {
		return colored(t.LaneColor(lane), arrows[lane])
	}
	return colored(dim, arrows[lane])
}

func (t *DefaultTheme) RenderJudgement(j game.Judgement) string {
	switch j {
	case game.Perfect:
		return "\033[1;33mPERFECT\033[0m"
	case game.Good:
		return "   \033[1;32mGOOD\033[0m"
	}
	return "   \033[1;31mMISS\033[0m"
}

const (
	noteSym = "⬤"
	holdSym = "◉"
)

var (
	arrows     = [game.NLanes]string{"↖", "↗", "↙", "↘"}
	white      = Color{255, 255, 255}
	dim        = Color{106, 106, 106}
	laneColors = [game.NLanes]Color{
		{255, 107, 157}, // UL pink
		{79, 195, 247},  // UR cyan
		{105, 240, 174}, // DL green
		{255, 213, 79},  // DR gold
	}
)
