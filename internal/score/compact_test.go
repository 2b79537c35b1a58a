package score

import (
	"testing"

	"git.lost.host/meutraa/lanes/internal/game"
)

var compactTests = []struct {
	inputs  []game.Input
	compact []InputsCompact
}{
	{[]game.Input{}, []InputsCompact{}},
	{[]game.Input{{Lane: 0, Time: 1.5}}, []InputsCompact{{Lane: 0, Times: []float64{1.5}}}},
	{
		[]game.Input{{Lane: 0, Time: 0.1}, {Lane: 3, Time: 0.2}},
		[]InputsCompact{
			{Lane: 0, Times: []float64{0.1}},
			{Lane: 1, Times: []float64{}},
			{Lane: 2, Times: []float64{}},
			{Lane: 3, Times: []float64{0.2}},
		},
	},
	{
		[]game.Input{{Lane: 1, Time: 2}, {Lane: 1, Time: 1}},
		[]InputsCompact{
			{Lane: 0, Times: []float64{}},
			{Lane: 1, Times: []float64{2, 1}},
		},
	},
}

func TestCompactInputs(t *testing.T) {
	equal := func(p, q []InputsCompact) bool {
		if len(p) != len(q) {
			return false
		}
		for i := 0; i < len(p); i++ {
			pi, qi := p[i], q[i]
			if pi.Lane != qi.Lane {
				return false
			}
			if len(pi.Times) != len(qi.Times) {
				return false
			}
			for j := 0; j < len(pi.Times); j++ {
				if pi.Times[j] != qi.Times[j] {
					return false
				}
			}
		}
		return true
	}

	for _, test := range compactTests {
		out := compactInputs(test.inputs)
		if !equal(out, test.compact) {
			t.Log("out     ", out)
			t.Log("expected", test.compact)
			t.Fail()
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	// Without an order, presses come back grouped by lane.
	for _, test := range compactTests {
		out := uncompactInputs(test.compact)
		if len(out) != len(test.inputs) {
			t.Log("in      ", test.compact)
			t.Log("expected", test.inputs)
			t.Fail()
			continue
		}
		for i := range out {
			if out[i] != test.inputs[i] {
				t.Log("in      ", test.compact)
				t.Log("expected", test.inputs)
				t.Fail()
				break
			}
		}
	}
}

func TestCompactKeepsPressOrder(t *testing.T) {
	inputs := []game.Input{
		{Lane: 1, Time: 10},
		{Lane: 0, Time: 10},
		{Lane: 3, Time: 9},
		{Lane: 1, Time: 11},
	}
	out := uncompactInputs(compactInputs(inputs))
	if len(out) != len(inputs) {
		t.Fatal("expected", len(inputs), "inputs, got", len(out))
	}
	for i := range inputs {
		if out[i] != inputs[i] {
			t.Log("out     ", out)
			t.Log("expected", inputs)
			t.Fail()
			break
		}
	}
}
