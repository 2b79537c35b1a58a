package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/lanes/internal/game"
)

// DefaultTheme draws arrows when Lanes is four and dots otherwise.
type DefaultTheme struct {
	Lanes int
}

func (t *DefaultTheme) RenderNote(lane int) string {
	c := laneColor(lane)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, sym(lane, t.Lanes))
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	return barSym
}

// RenderJudgement pads every name to the same width so a shorter one fully
// overwrites a longer one.
func (t *DefaultTheme) RenderJudgement(j game.Judgement) string {
	c, ok := judgementColors[j]
	if !ok {
		c = judgementColors[game.Miss]
	}
	return fmt.Sprintf("\033[1;38;2;%v;%v;%vm%7v\033[0m", c.R, c.G, c.B, j)
}

const (
	barSym = "-"
)

var (
	syms       = [...]string{"▲", "◀", "▼", "▶"}
	laneColors = [...]color.RGBA{
		{236, 30, 0, 255},    // red
		{0, 118, 236, 255},   // blue
		{236, 195, 0, 255},   // yellow
		{0, 236, 128, 255},   // green
		{106, 0, 236, 255},   // purple
		{236, 0, 106, 255},   // pink
		{236, 128, 0, 255},   // orange
		{173, 236, 236, 255}, // light blue
	}
	judgementColors = map[game.Judgement]color.RGBA{
		game.Perfect: {255, 215, 0, 255},
		game.Good:    {0, 200, 255, 255},
		game.Fine:    {0, 220, 90, 255},
		game.Sad:     {180, 120, 255, 255},
		game.Miss:    {236, 30, 0, 255},
	}
)

func sym(lane, lanes int) string {
	if lanes == len(syms) && lane >= 0 && lane < len(syms) {
		return syms[lane]
	}
	return "⬤"
}

func laneColor(lane int) color.RGBA {
	if lane < 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	return laneColors[lane%len(laneColors)]
}
