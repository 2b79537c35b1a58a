package theme

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/lanes/internal/game"
)

func TestRenderNote(t *testing.T) {
	tests := []struct {
		lanes    int
		lane     int
		expected string
	}{
		{4, 0, "▲"},
		{4, 1, "◀"},
		{4, 2, "▼"},
		{4, 3, "▶"},
		{6, 0, "⬤"},
		{6, 3, "⬤"},
		{6, 5, "⬤"},
		{2, 1, "⬤"},
		{0, 0, "⬤"},
	}
	for _, test := range tests {
		var th Theme = &DefaultTheme{Lanes: test.lanes}
		if out := th.RenderNote(test.lane); !strings.Contains(out, test.expected) {
			t.Log("lanes   ", test.lanes)
			t.Log("lane    ", test.lane)
			t.Log("out     ", out)
			t.Log("expected", test.expected)
			t.Fail()
		}
	}
}

func TestRenderJudgementWidth(t *testing.T) {
	th := &DefaultTheme{}
	for _, j := range game.Judgements {
		out := th.RenderJudgement(j)
		if !strings.Contains(out, j.String()) {
			t.Errorf("%v missing from %q", j, out)
		}
		start := strings.Index(out, "m") + 1
		end := strings.LastIndex(out, "\033")
		if end-start != 7 {
			t.Errorf("%v rendered %d wide", j, end-start)
		}
	}
}
