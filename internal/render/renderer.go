package render

import (
	"time"

	"git.lost.host/meutraa/lanes/internal/engine"
	"git.lost.host/meutraa/lanes/internal/theme"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(col, row int, content string, frames int)
	RenderLoop(framePeriod time.Duration, render func() bool)
	Fill(row, column int, message string)
	Frame(now float64, notes []engine.NoteView, th theme.Theme)
}
