package score

import (
	"math"
	"sort"

	"git.lost.host/meutraa/lanes/internal/engine"
	"git.lost.host/meutraa/lanes/internal/game"
)

// Apply feeds one press into e the way the host loop does: notes whose
// window closed before the press are missed first, then the press judges
// the earliest hittable note of its lane.
func Apply(e *engine.Engine, in game.Input) (game.Judgement, bool) {
	e.SweepMisses(in.Time)
	return e.TryJudgeLane(in.Lane, in.Time)
}

// Replay plays inputs against a fresh engine loaded with chart and
// summarises the outcome. Inputs are applied in time order.
func Replay(cfg engine.Config, chart *game.Chart, inputs []game.Input) (Summary, error) {
	e, err := engine.New(cfg, 0)
	if nil != err {
		return Summary{}, err
	}
	if err := e.SpawnChart(chart); nil != err {
		return Summary{}, err
	}

	sorted := make([]game.Input, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	for _, in := range sorted {
		Apply(e, in)
	}
	e.SweepMisses(math.Inf(1))

	return Summarize(chart, len(chart.Notes), e.Score()), nil
}
