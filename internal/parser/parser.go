package parser

import "git.lost.host/meutraa/orbital/internal/game"

type Parser interface {
	Parse(file string) (game.Chart, error)
}
