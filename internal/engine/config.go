package engine

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/lanes/internal/game"
)

// Config holds the tuning shared by every note of an engine. It is copied
// at construction and never changes afterwards.
type Config struct {
	Lanes                 int             `yaml:"lanes"`
	ApproachSeconds       float64         `yaml:"approach_seconds"`
	MaxAlive              int             `yaml:"max_alive"`
	MaxAlivePerLane       int             `yaml:"max_alive_per_lane"`
	SpawnLookaheadSeconds float64         `yaml:"spawn_lookahead_seconds"`
	MinNoteGapSeconds     float64         `yaml:"min_note_gap_seconds"`
	Windows               game.HitWindows `yaml:"windows"`
}

func DefaultConfig() Config {
	return Config{
		Lanes:                 game.DefaultLanes,
		ApproachSeconds:       2.8,
		MaxAlive:              8,
		MaxAlivePerLane:       1,
		SpawnLookaheadSeconds: 8.0,
		MinNoteGapSeconds:     0.22,
		Windows:               game.DefaultHitWindows(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.Lanes < 1:
		return fmt.Errorf("%w: lanes must be at least 1, got %d", ErrInvalidConfig, c.Lanes)
	case !finitePositive(c.ApproachSeconds):
		return fmt.Errorf("%w: approach time must be positive, got %v", ErrInvalidConfig, c.ApproachSeconds)
	case c.MaxAlive < 1:
		return fmt.Errorf("%w: max alive must be positive, got %d", ErrInvalidConfig, c.MaxAlive)
	case c.MaxAlivePerLane < 1 || c.MaxAlivePerLane > c.MaxAlive:
		return fmt.Errorf("%w: max alive per lane must be in [1, %d], got %d", ErrInvalidConfig, c.MaxAlive, c.MaxAlivePerLane)
	case !finitePositive(c.SpawnLookaheadSeconds):
		return fmt.Errorf("%w: spawn lookahead must be positive, got %v", ErrInvalidConfig, c.SpawnLookaheadSeconds)
	case !finitePositive(c.MinNoteGapSeconds):
		return fmt.Errorf("%w: minimum note gap must be positive, got %v", ErrInvalidConfig, c.MinNoteGapSeconds)
	}
	if err := c.Windows.Validate(); nil != err {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !finitePositive(c.Windows.Miss) {
		return fmt.Errorf("%w: miss window must be positive", ErrInvalidConfig)
	}
	return nil
}

// NaN fails every comparison, so positivity is tested in the affirmative.
func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
