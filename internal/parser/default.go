package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"git.lost.host/meutraa/orbital/internal/game"
)

// DefaultParser reads JSON charts.
type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return game.Chart{}, err
	}
	chart, err := p.ParseBytes(data)
	if nil != err {
		return game.Chart{}, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	return chart, nil
}

func (p *DefaultParser) ParseBytes(data []byte) (game.Chart, error) {
	var raw game.RawChart
	if err := json.Unmarshal(data, &raw); nil != err {
		return game.Chart{}, err
	}
	return game.Load(raw)
}
