package theme

import "git.lost.host/meutraa/lanes/internal/game"

type Theme interface {
	RenderNote(lane int) string
	RenderHitField(lane int) string
	RenderJudgement(j game.Judgement) string
}
