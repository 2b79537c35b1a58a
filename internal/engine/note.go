package engine

import "git.lost.host/meutraa/lanes/internal/game"

// Note is a live note owned by an Engine. Everything except its judgement is
// fixed at spawn; the judgement is written once.
type Note struct {
	seq       uint64
	lane      int
	time      float64
	spawn     float64
	judged    bool
	judgement game.Judgement
}

func (n *Note) Seq() uint64               { return n.seq }
func (n *Note) Lane() int                 { return n.lane }
func (n *Note) Time() float64             { return n.time }
func (n *Note) SpawnTime() float64        { return n.spawn }
func (n *Note) Judged() bool              { return n.judged }
func (n *Note) Judgement() game.Judgement { return n.judgement }

// NoteView is a read-only copy of a live note for rendering.
type NoteView struct {
	Seq             uint64
	Lane            int
	Time            float64
	SpawnTime       float64
	ApproachSeconds float64
	Judged          bool
	Judgement       game.Judgement
}

// Progress is how far the note has travelled from spawn to the hit bar,
// clamped to [0, 1].
func (v NoteView) Progress(now float64) float64 {
	p := (now - v.SpawnTime) / v.ApproachSeconds
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
