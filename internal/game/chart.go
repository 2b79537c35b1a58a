package game

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"math"
	"sort"
)

const (
	DefaultLanes           = 4
	DefaultApproachSeconds = 1.6
)

type Chart struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Artist          string      `json:"artist"`
	Audio           string      `json:"audio"`
	ApproachSeconds float64     `json:"approachSeconds"`
	Lanes           int         `json:"lanes,omitempty"`
	Notes           []ChartNote `json:"notes"`
	Difficulty      Difficulty  `json:"difficulty,omitempty"`
}

// Events sorts the chart notes by (time, lane) and numbers them in that order.
func (c *Chart) Events() []NoteEvent {
	sorted := make([]ChartNote, len(c.Notes))
	copy(sorted, c.Notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Time != sorted[j].Time {
			return sorted[i].Time < sorted[j].Time
		}
		return sorted[i].Lane < sorted[j].Lane
	})

	events := make([]NoteEvent, len(sorted))
	for i, n := range sorted {
		events[i] = NoteEvent{Seq: i, Lane: n.Lane, Time: n.Time}
	}
	return events
}

// End is the target time of the last note, or 0 for an empty chart.
func (c *Chart) End() float64 {
	end := 0.0
	for _, n := range c.Notes {
		end = math.Max(end, n.Time)
	}
	return end
}

// Sum identifies the playable content of a chart, independent of metadata.
func (c *Chart) Sum() string {
	h := sha256.New()
	var buf [16]byte
	for _, e := range c.Events() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(e.Lane))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(e.Time))
		h.Write(buf[:])
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
