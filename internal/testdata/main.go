package testdata

import (
	_ "embed"
	"encoding/json"

	"git.lost.host/meutraa/lanes/internal/game"
)

//go:embed demo.json
var Demo []byte

func GetChart() (*game.Chart, error) {
	var chart game.Chart
	if err := json.Unmarshal(Demo, &chart); nil != err {
		return nil, err
	}
	return &chart, nil
}
