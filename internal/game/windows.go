package game

import (
	"errors"
	"fmt"
	"math"
)

var ErrWindowOrder = errors.New("hit windows must satisfy 0 <= perfect <= good <= safe <= sad <= miss")

// HitWindows are symmetric tolerances in seconds around a note's target time.
type HitWindows struct {
	Perfect float64 `yaml:"perfect"`
	Good    float64 `yaml:"good"`
	Safe    float64 `yaml:"safe"`
	Sad     float64 `yaml:"sad"`
	Miss    float64 `yaml:"miss"`
}

func DefaultHitWindows() HitWindows {
	return HitWindows{Perfect: 0.08, Good: 0.18, Safe: 0.26, Sad: 0.33, Miss: 0.40}
}

func (w HitWindows) Validate() error {
	ordered := w.Perfect >= 0 && w.Perfect <= w.Good && w.Good <= w.Safe && w.Safe <= w.Sad && w.Sad <= w.Miss
	if !ordered || math.IsInf(w.Miss, 1) {
		return fmt.Errorf("%w: got %v", ErrWindowOrder, w)
	}
	return nil
}

// Classify maps an absolute timing error to the tightest window it fits.
func (w HitWindows) Classify(d float64) Judgement {
	switch {
	case d <= w.Perfect:
		return Perfect
	case d <= w.Good:
		return Good
	case d <= w.Safe:
		return Fine
	case d <= w.Sad:
		return Sad
	}
	return Miss
}

func (w HitWindows) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f, %.3f, %.3f)", w.Perfect, w.Good, w.Safe, w.Sad, w.Miss)
}
