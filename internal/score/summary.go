package score

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/lanes/internal/engine"
	"git.lost.host/meutraa/lanes/internal/game"
)

type Summary struct {
	Title    string
	Artist   string
	Notes    int
	Score    int
	MaxCombo int
	Counts   [game.JudgementCount]int
}

func Summarize(chart *game.Chart, notes int, s engine.ScoreState) Summary {
	sum := Summary{
		Notes:    notes,
		Score:    s.Score,
		MaxCombo: s.MaxCombo,
		Counts:   s.Counts,
	}
	if nil != chart {
		sum.Title, sum.Artist = chart.Title, chart.Artist
	}
	return sum
}

// Accuracy is the share of the base score available without combo bonus,
// as a percentage.
func (s Summary) Accuracy() float64 {
	if s.Notes == 0 {
		return 0
	}
	earned := 0
	for j, count := range s.Counts {
		earned += game.Judgement(j).Base() * count
	}
	return 100 * float64(earned) / float64(s.Notes*game.Perfect.Base())
}

func (s Summary) Report() string {
	var b strings.Builder
	if s.Title != "" {
		fmt.Fprintf(&b, "%v - %v\n", s.Title, s.Artist)
	}
	fmt.Fprintf(&b, "%11s  %6d\n", "Notes:", s.Notes)
	fmt.Fprintf(&b, "%11s  %6d\n", "Score:", s.Score)
	fmt.Fprintf(&b, "%11s  %6d\n", "Max combo:", s.MaxCombo)
	fmt.Fprintf(&b, "%11s  %6.2f%%\n", "Accuracy:", s.Accuracy())
	for _, j := range game.Judgements {
		fmt.Fprintf(&b, "%11s  %6d\n", j.String()+":", s.Counts[j])
	}
	return b.String()
}
