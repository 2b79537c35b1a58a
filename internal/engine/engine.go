package engine

import (
	"fmt"
	"math"
	"math/rand"

	"git.lost.host/meutraa/lanes/internal/game"
)

// ScoreState is the running result of a session. Score never decreases and
// Combo drops to zero on every miss.
type ScoreState struct {
	Score    int
	Combo    int
	MaxCombo int
	Counts   [game.JudgementCount]int
}

// Engine tracks live notes, judges presses against them and accumulates the
// score. It is driven by a single host loop and holds no locks; every call
// takes the current song time from the caller.
type Engine struct {
	cfg   Config
	seed  int64
	rng   *rand.Rand
	notes []*Note
	next  uint64
	score ScoreState
	grid  gridCursor
}

// New validates cfg and returns an empty engine. The seed only drives the
// procedural generator.
func New(cfg Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); nil != err {
		return nil, err
	}
	return &Engine{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Score() ScoreState {
	return e.score
}

// Reset drops every note and the score, and rewinds the generator so a
// restarted session replays identically.
func (e *Engine) Reset() {
	e.notes = nil
	e.next = 0
	e.score = ScoreState{}
	e.grid = gridCursor{}
	e.rng = rand.New(rand.NewSource(e.seed))
}

// SpawnNote adds a note without any capacity check.
func (e *Engine) SpawnNote(lane int, t float64) (*Note, error) {
	if err := e.checkLane(lane); nil != err {
		return nil, err
	}
	return e.spawn(lane, t), nil
}

// SpawnChart spawns every chart note in (time, lane) order. Nothing is
// spawned if any note has an invalid lane.
func (e *Engine) SpawnChart(c *game.Chart) error {
	events := c.Events()
	for _, ev := range events {
		if err := e.checkLane(ev.Lane); nil != err {
			return fmt.Errorf("chart note %d at %.3fs: %w", ev.Seq, ev.Time, err)
		}
	}
	for _, ev := range events {
		e.spawn(ev.Lane, ev.Time)
	}
	return nil
}

func (e *Engine) checkLane(lane int) error {
	if lane < 0 || lane >= e.cfg.Lanes {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrLaneOutOfRange, lane, e.cfg.Lanes)
	}
	return nil
}

func (e *Engine) spawn(lane int, t float64) *Note {
	n := &Note{
		seq:   e.next,
		lane:  lane,
		time:  t,
		spawn: t - e.cfg.ApproachSeconds,
	}
	e.next++
	e.notes = append(e.notes, n)
	return n
}

func (e *Engine) AliveCountInLane(lane int) int {
	c := 0
	for _, n := range e.notes {
		if !n.judged && n.lane == lane {
			c++
		}
	}
	return c
}

func (e *Engine) AliveCountAll() int {
	c := 0
	for _, n := range e.notes {
		if !n.judged {
			c++
		}
	}
	return c
}

// FindEarliestLaneNote returns the unjudged note of lane with the smallest
// target time, the first spawned one on a tie, or nil.
func (e *Engine) FindEarliestLaneNote(lane int) *Note {
	var best *Note
	for _, n := range e.notes {
		if n.judged || n.lane != lane {
			continue
		}
		if nil == best || n.time < best.time || (n.time == best.time && n.seq < best.seq) {
			best = n
		}
	}
	return best
}

// IsHittable reports whether t lies in [time - sad, time + miss] of n.
func (e *Engine) IsHittable(n *Note, t float64) bool {
	if nil == n {
		return false
	}
	w := e.cfg.Windows
	return t >= n.time-w.Sad && t <= n.time+w.Miss
}

// Judge resolves n against a press at t. Callers must gate with IsHittable
// first: a t outside the hittable envelope still resolves, as a miss.
// A nil or already judged note is left alone and reads as a miss.
func (e *Engine) Judge(n *Note, t float64) game.Judgement {
	if nil == n || n.judged {
		return game.Miss
	}
	j := e.cfg.Windows.Classify(math.Abs(n.time - t))
	e.resolve(n, j)
	return j
}

// TryJudgeLane judges the earliest note of lane if it is hittable at t.
// The boolean is false when no note was judged.
func (e *Engine) TryJudgeLane(lane int, t float64) (game.Judgement, bool) {
	n := e.FindEarliestLaneNote(lane)
	if !e.IsHittable(n, t) {
		return game.Miss, false
	}
	return e.Judge(n, t), true
}

// SweepMisses resolves as a miss every unjudged note whose miss window has
// passed at t, returning what it resolved.
func (e *Engine) SweepMisses(t float64) []NoteView {
	var missed []NoteView
	for _, n := range e.notes {
		if n.judged || t <= n.time+e.cfg.Windows.Miss {
			continue
		}
		e.resolve(n, game.Miss)
		missed = append(missed, e.view(n))
	}
	return missed
}

// CleanupJudged drops judged notes whose target time is more than keep
// seconds before now. It returns how many were dropped.
func (e *Engine) CleanupJudged(now, keep float64) int {
	kept := e.notes[:0]
	for _, n := range e.notes {
		if n.judged && now-n.time > keep {
			continue
		}
		kept = append(kept, n)
	}
	removed := len(e.notes) - len(kept)
	for i := len(kept); i < len(e.notes); i++ {
		e.notes[i] = nil
	}
	e.notes = kept
	return removed
}

func (e *Engine) resolve(n *Note, j game.Judgement) {
	n.judged = true
	n.judgement = j

	s := &e.score
	s.Counts[j]++
	if !j.Hit() {
		s.Combo = 0
		return
	}
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	// floor(base * (1 + combo * 0.03)) in integers, using the new combo
	s.Score += j.Base() * (100 + 3*s.Combo) / 100
}

// Snapshot copies every live note, judged or not, in spawn order.
func (e *Engine) Snapshot() []NoteView {
	views := make([]NoteView, len(e.notes))
	for i, n := range e.notes {
		views[i] = e.view(n)
	}
	return views
}

func (e *Engine) view(n *Note) NoteView {
	return NoteView{
		Seq:             n.seq,
		Lane:            n.lane,
		Time:            n.time,
		SpawnTime:       n.spawn,
		ApproachSeconds: e.cfg.ApproachSeconds,
		Judged:          n.judged,
		Judgement:       n.judgement,
	}
}
