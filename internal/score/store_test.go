package score

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/lanes/internal/engine"
	"git.lost.host/meutraa/lanes/internal/game"
	"git.lost.host/meutraa/lanes/internal/testdata"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openStore(t)
	chart, err := testdata.GetChart()
	require.NoError(t, err)

	_, err = s.Load(chart)
	assert.ErrorIs(t, err, ErrNoReplay)

	id, err := s.Save(chart, demoInputs, 42)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	histories, err := s.Load(chart)
	require.NoError(t, err)
	require.Len(t, histories, 1)

	h := histories[0]
	assert.Equal(t, id, h.ID)
	assert.Equal(t, chart.Sum(), h.Sum)
	assert.Equal(t, int64(42), h.Seed)
	assert.ElementsMatch(t, demoInputs, h.Inputs)

	// a stored replay scores the same as the live inputs
	live, err := Replay(demoConfig(t, chart), chart, demoInputs)
	require.NoError(t, err)
	stored, err := Replay(demoConfig(t, chart), chart, h.Inputs)
	require.NoError(t, err)
	assert.Equal(t, live, stored)
}

func TestStoreSeparatesCharts(t *testing.T) {
	s := openStore(t)
	a := &game.Chart{Notes: []game.ChartNote{{Time: 1, Lane: 0}}}
	b := &game.Chart{Notes: []game.ChartNote{{Time: 1, Lane: 1}}}

	_, err := s.Save(a, []game.Input{{Lane: 0, Time: 1}}, 0)
	require.NoError(t, err)
	_, err = s.Save(a, nil, 0)
	require.NoError(t, err)

	histories, err := s.Load(a)
	require.NoError(t, err)
	assert.Len(t, histories, 2)

	_, err = s.Load(b)
	assert.ErrorIs(t, err, ErrNoReplay)
}

func TestStoreKeepsSameTimePressOrder(t *testing.T) {
	s := openStore(t)
	chart := &game.Chart{Notes: []game.ChartNote{{Time: 10, Lane: 1}, {Time: 10.1, Lane: 0}}}
	inputs := []game.Input{{Lane: 1, Time: 10}, {Lane: 0, Time: 10}}

	live, err := Replay(engine.DefaultConfig(), chart, inputs)
	require.NoError(t, err)
	assert.Equal(t, 515+318, live.Score)

	_, err = s.Save(chart, inputs, 0)
	require.NoError(t, err)
	histories, err := s.Load(chart)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, inputs, histories[0].Inputs)

	stored, err := Replay(engine.DefaultConfig(), chart, histories[0].Inputs)
	require.NoError(t, err)
	assert.Equal(t, live, stored)
}
