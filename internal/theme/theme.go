package theme

import "git.lost.host/meutraa/orbital/internal/game"

type Color struct {
	R, G, B uint8
}

type Theme interface {
	RenderNote(lane game.Lane, holding bool) string
	RenderReceptor(lane game.Lane, lit bool) string
	RenderJudgement(j game.Judgement) string
	LaneColor(lane game.Lane) Color
}
