package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/lanes/internal/engine"
)

func TestParseDefaults(t *testing.T) {
	o, err := Parse([]string{"song.json"})
	require.NoError(t, err)

	assert.Equal(t, "song.json", o.Chart)
	assert.Equal(t, "dfjk", o.Keys)
	assert.Equal(t, 1500*time.Millisecond, o.Delay)
	assert.Equal(t, 2.0, o.KeepSeconds)
	assert.Equal(t, "./replays.db", o.Database)
	assert.False(t, o.Generate)
	assert.False(t, o.Replay)
}

func TestParseFlags(t *testing.T) {
	o, err := Parse([]string{"-g", "--bpm", "140", "--seed", "9", "--offset=-20ms", "-k", "asdf"})
	require.NoError(t, err)

	assert.True(t, o.Generate)
	assert.Equal(t, 140.0, o.BPM)
	assert.Equal(t, int64(9), o.Seed)
	assert.Equal(t, -20*time.Millisecond, o.Offset)
	assert.Equal(t, "asdf", o.Keys)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)

	_, err = Parse([]string{"song.json", "--keep=-1"})
	assert.Error(t, err)

	_, err = Parse([]string{"song.json", "--tuning", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadTuning(t *testing.T) {
	cfg := engine.DefaultConfig()
	doc := `
lanes: 6
max_alive_per_lane: 2
windows:
  perfect: 0.05
  good: 0.1
  safe: 0.15
  sad: 0.2
  miss: 0.25
`
	require.NoError(t, LoadTuning(strings.NewReader(doc), &cfg))
	assert.Equal(t, 6, cfg.Lanes)
	assert.Equal(t, 2, cfg.MaxAlivePerLane)
	assert.Equal(t, 8, cfg.MaxAlive)
	assert.Equal(t, 2.8, cfg.ApproachSeconds)
	assert.Equal(t, 0.25, cfg.Windows.Miss)

	assert.Error(t, LoadTuning(strings.NewReader("lanse: 3\n"), &cfg))
	assert.NoError(t, LoadTuning(strings.NewReader(""), &cfg))
}

func TestEngineConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(file, []byte("approach_seconds: 2.0\nmax_alive: 16\n"), 0o644))

	o, err := Parse([]string{"song.json", "--tuning", file})
	require.NoError(t, err)

	cfg, err := o.EngineConfig(0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.ApproachSeconds)
	assert.Equal(t, 16, cfg.MaxAlive)

	cfg, err = o.EngineConfig(1.6)
	require.NoError(t, err)
	assert.Equal(t, 1.6, cfg.ApproachSeconds)

	require.NoError(t, os.WriteFile(file, []byte("windows:\n  perfect: 0.5\n"), 0o644))
	_, err = o.EngineConfig(0)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}
