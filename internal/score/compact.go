package score

import (
	"sort"

	"git.lost.host/meutraa/lanes/internal/game"
)

// InputsCompact groups the press times of one lane. Order holds the
// position of each press in the original session so presses that share a
// time keep the order they were judged in.
type InputsCompact struct {
	Lane  int       `json:"l"`
	Times []float64 `json:"t"`
	Order []int     `json:"o,omitempty"`
}

func compactInputs(inputs []game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range inputs {
		if i.Lane+1 > laneCount {
			laneCount = i.Lane + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	for l := range ins {
		ins[l].Lane = l
	}
	for n, i := range inputs {
		if i.Lane < 0 {
			continue
		}
		ins[i.Lane].Times = append(ins[i.Lane].Times, i.Time)
		ins[i.Lane].Order = append(ins[i.Lane].Order, n)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	type press struct {
		order int
		input game.Input
	}
	presses := []press{}
	for _, i := range inputs {
		for k, t := range i.Times {
			order := 0
			if k < len(i.Order) {
				order = i.Order[k]
			}
			presses = append(presses, press{order, game.Input{Lane: i.Lane, Time: t}})
		}
	}
	sort.SliceStable(presses, func(a, b int) bool { return presses[a].order < presses[b].order })

	ins := make([]game.Input, len(presses))
	for n, p := range presses {
		ins[n] = p.input
	}
	return ins
}
