package engine

import (
	"fmt"
	"math"
)

// gridCursor remembers where GenerateAhead stopped.
type gridCursor struct {
	started bool
	bpm     float64
	origin  float64
	beat    int
	last    float64
}

func beatSeconds(bpm float64) (float64, error) {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return 0, fmt.Errorf("%w: bpm must be positive, got %v", ErrInvalidConfig, bpm)
	}
	return 60 / bpm, nil
}

// GenerateGrid offers one candidate note per beat in [start, end] and
// returns how many were spawned. A candidate is skipped when it falls closer
// than the minimum gap to the last accepted note or its random lane is
// full; generation stops once the global alive cap is reached.
func (e *Engine) GenerateGrid(bpm, start, end float64) (int, error) {
	beat, err := beatSeconds(bpm)
	if nil != err {
		return 0, err
	}

	last := math.Inf(-1)
	spawned := 0
	for i := 0; ; i++ {
		t := start + float64(i)*beat
		if t > end {
			break
		}
		ok, full := e.offer(t, &last)
		if full {
			break
		}
		if ok {
			spawned++
		}
	}
	return spawned, nil
}

// GenerateAhead keeps a beat grid filled up to now plus the spawn
// lookahead. The grid starts one approach time after the first call, or
// after a tempo change, so new notes are never due on arrival. When the
// alive cap is reached the pending beat is retried on the next call unless
// it has already passed.
func (e *Engine) GenerateAhead(bpm, now float64) (int, error) {
	beat, err := beatSeconds(bpm)
	if nil != err {
		return 0, err
	}

	g := &e.grid
	if !g.started {
		g.last = math.Inf(-1)
	}
	if !g.started || g.bpm != bpm {
		g.started = true
		g.bpm = bpm
		g.origin = now + math.Min(e.cfg.ApproachSeconds, e.cfg.SpawnLookaheadSeconds)
		g.beat = 0
	}

	horizon := now + e.cfg.SpawnLookaheadSeconds
	spawned := 0
	for {
		t := g.origin + float64(g.beat)*beat
		if t > horizon {
			break
		}
		if t < now {
			g.beat++
			continue
		}
		ok, full := e.offer(t, &g.last)
		if full {
			break
		}
		g.beat++
		if ok {
			spawned++
		}
	}
	return spawned, nil
}

func (e *Engine) offer(t float64, last *float64) (accepted, full bool) {
	if e.AliveCountAll() >= e.cfg.MaxAlive {
		return false, true
	}
	if t-*last < e.cfg.MinNoteGapSeconds {
		return false, false
	}
	lane := e.rng.Intn(e.cfg.Lanes)
	if e.AliveCountInLane(lane) >= e.cfg.MaxAlivePerLane {
		return false, false
	}
	e.spawn(lane, t)
	*last = t
	return true, false
}
