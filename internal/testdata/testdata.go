package testdata

import (
	_ "embed"

	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/parser"
)

//go:embed chart.json
var data []byte

func GetChart() (*game.Chart, error) {
	p := &parser.DefaultParser{}
	chart, err := p.ParseBytes(data)
	if nil != err {
		return nil, err
	}
	return &chart, nil
}
