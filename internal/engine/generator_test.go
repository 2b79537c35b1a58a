package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/lanes/internal/game"
)

type spawned struct {
	Lane int
	Time float64
}

func pairs(e *Engine) []spawned {
	var out []spawned
	for _, v := range e.Snapshot() {
		out = append(out, spawned{v.Lane, v.Time})
	}
	return out
}

func wideConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxAlive = 64
	cfg.MaxAlivePerLane = 32
	return cfg
}

func TestGenerateGridDeterministic(t *testing.T) {
	run := func() []spawned {
		e, err := New(wideConfig(), 7)
		require.NoError(t, err)
		_, err = e.GenerateGrid(150, 0, 20)
		require.NoError(t, err)
		return pairs(e)
	}
	first := run()
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
}

func TestGenerateGridCaps(t *testing.T) {
	e := newEngine(t)
	n, err := e.GenerateGrid(120, 0, 30)
	require.NoError(t, err)

	cfg := e.Config()
	assert.LessOrEqual(t, n, cfg.MaxAlive)
	assert.Equal(t, n, e.AliveCountAll())
	for lane := 0; lane < cfg.Lanes; lane++ {
		assert.LessOrEqual(t, e.AliveCountInLane(lane), cfg.MaxAlivePerLane)
	}

	notes := pairs(e)
	for i, p := range notes {
		beats := p.Time / 0.5
		assert.InDelta(t, math.Round(beats), beats, 1e-9)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Time-notes[i-1].Time, cfg.MinNoteGapSeconds)
		}
	}
}

func TestGenerateGridGlobalCap(t *testing.T) {
	cfg := wideConfig()
	cfg.MaxAlive = 5
	cfg.MaxAlivePerLane = 5
	e, err := New(cfg, 3)
	require.NoError(t, err)

	n, err := e.GenerateGrid(60, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 4.0, pairs(e)[4].Time)
}

func TestGenerateGridMinGap(t *testing.T) {
	cfg := wideConfig()
	cfg.MinNoteGapSeconds = 0.3
	e, err := New(cfg, 3)
	require.NoError(t, err)

	// a beat of 0.25s only fits every other candidate
	n, err := e.GenerateGrid(240, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	for i, p := range pairs(e) {
		assert.InDelta(t, float64(i)*0.5, p.Time, 1e-9)
	}
}

func TestGenerateInvalidTempo(t *testing.T) {
	e := newEngine(t)
	for _, bpm := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := e.GenerateGrid(bpm, 0, 10)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		_, err = e.GenerateAhead(bpm, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
	assert.Empty(t, e.Snapshot())
}

func TestGenerateAhead(t *testing.T) {
	e, err := New(wideConfig(), 11)
	require.NoError(t, err)
	cfg := e.Config()

	_, err = e.GenerateAhead(120, 0)
	require.NoError(t, err)
	notes := pairs(e)
	require.NotEmpty(t, notes)
	assert.InDelta(t, cfg.ApproachSeconds, notes[0].Time, 1e-9)
	for _, p := range notes {
		assert.LessOrEqual(t, p.Time, cfg.SpawnLookaheadSeconds)
	}

	// the same horizon adds nothing
	n, err := e.GenerateAhead(120, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = e.GenerateAhead(120, 4)
	require.NoError(t, err)
	more := pairs(e)
	assert.Greater(t, len(more), len(notes))
	for i := 1; i < len(more); i++ {
		assert.Greater(t, more[i].Time, more[i-1].Time)
	}
	assert.LessOrEqual(t, more[len(more)-1].Time, 4+cfg.SpawnLookaheadSeconds)
}

func TestResetReplaysGenerator(t *testing.T) {
	e, err := New(wideConfig(), 99)
	require.NoError(t, err)

	_, err = e.GenerateGrid(100, 0, 15)
	require.NoError(t, err)
	first := pairs(e)

	e.Reset()
	_, err = e.GenerateGrid(100, 0, 15)
	require.NoError(t, err)
	assert.Equal(t, first, pairs(e))
}

func unjudged(e *Engine) []spawned {
	var out []spawned
	for _, v := range e.Snapshot() {
		if !v.Judged {
			out = append(out, spawned{v.Lane, v.Time})
		}
	}
	return out
}

func TestGenerateAheadRetriesAtCap(t *testing.T) {
	cfg := wideConfig()
	cfg.MaxAlive = 2
	cfg.MaxAlivePerLane = 2
	e, err := New(cfg, 5)
	require.NoError(t, err)

	n, err := e.GenerateAhead(120, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	notes := unjudged(e)
	require.Len(t, notes, 2)
	assert.InDelta(t, 2.8, notes[0].Time, 1e-9)
	assert.InDelta(t, 3.3, notes[1].Time, 1e-9)

	// freeing one slot lets the beat that hit the cap through, and only it
	first := e.FindEarliestLaneNote(notes[0].Lane)
	require.NotNil(t, first)
	assert.Equal(t, game.Perfect, e.Judge(first, first.Time()))

	n, err = e.GenerateAhead(120, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	notes = unjudged(e)
	require.Len(t, notes, 2)
	assert.InDelta(t, 3.8, notes[1].Time, 1e-9)

	for lane := 0; lane < cfg.Lanes; lane++ {
		for note := e.FindEarliestLaneNote(lane); nil != note; note = e.FindEarliestLaneNote(lane) {
			e.Judge(note, note.Time())
		}
	}
	require.Equal(t, 0, e.AliveCountAll())

	// beats that passed while the cap was held are dropped
	n, err = e.GenerateAhead(120, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	notes = unjudged(e)
	require.Len(t, notes, 2)
	assert.InDelta(t, 5.3, notes[0].Time, 1e-9)
	assert.InDelta(t, 5.8, notes[1].Time, 1e-9)
}
