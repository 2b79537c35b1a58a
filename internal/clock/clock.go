// Package clock supplies song time, in seconds, to the host loop. The engine
// never reads time itself.
package clock

import (
	"sync"
	"time"

	"github.com/faiface/beep"
)

type Clock interface {
	// Now is the current song time in seconds; negative during a lead-in.
	Now() float64
}

// Manual only moves when told to. Replays and tests drive it directly.
type Manual struct {
	t float64
}

func (m *Manual) Now() float64       { return m.t }
func (m *Manual) Set(t float64)      { m.t = t }
func (m *Manual) Advance(dt float64) { m.t += dt }

// Wall measures monotonic time since its creation, shifted back by delay so
// the song starts delay after the clock does.
type Wall struct {
	start time.Time
	since func(time.Time) time.Duration
}

func NewWall(delay time.Duration) *Wall {
	return &Wall{start: time.Now().Add(delay), since: time.Since}
}

func (w *Wall) Now() float64 {
	return w.since(w.start).Seconds()
}

// Stream reads the playback position of an audio stream. The speaker
// mixes on its own goroutine, so reads go through the supplied lock.
type Stream struct {
	streamer beep.StreamSeeker
	format   beep.Format
	locker   sync.Locker
}

func NewStream(streamer beep.StreamSeeker, format beep.Format, locker sync.Locker) *Stream {
	return &Stream{streamer: streamer, format: format, locker: locker}
}

func (s *Stream) Now() float64 {
	s.locker.Lock()
	pos := s.streamer.Position()
	s.locker.Unlock()
	return s.format.SampleRate.D(pos).Seconds()
}

// Offset shifts another clock, typically by the player's global input
// offset.
type Offset struct {
	Clock
	Seconds float64
}

func (o Offset) Now() float64 {
	return o.Clock.Now() + o.Seconds
}
