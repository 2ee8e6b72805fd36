package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/sim"
)

func TestRecord(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession("test", cfg)
	assert.Equal(t, "desktop", s.Layout)
	assert.Equal(t, int64(1), s.Seed)

	st := sim.NewState(cfg)
	st.Ticks = 120
	st.Distance = 3600
	st.TopSpeed = 40
	st.OffRoadTicks = 30
	st.Rerolls = 2
	s.Record(st)

	assert.InDelta(t, 2.0, s.Elapsed, 1e-9)
	assert.InDelta(t, 80, s.TopMPH, 1e-9)
	assert.InDelta(t, 0.25, s.OffRoadShare(), 1e-9)
	assert.Equal(t, 2, s.Rerolls)
	assert.Equal(t, st.Vehicle.Speed, s.FinalSpeed)
}

func TestOffRoadShareEmpty(t *testing.T) {
	s := NewSession("empty", config.DefaultConfig())
	assert.Zero(t, s.OffRoadShare())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewSession("saved", config.DefaultConfig())
	s.Ticks = 10
	s.Distance = 270
	require.NoError(t, s.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Name)
	assert.EqualValues(t, 10, loaded.Ticks)
	assert.InDelta(t, 270, loaded.Distance, 1e-9)
	assert.True(t, s.CreatedAt.Equal(loaded.CreatedAt))
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}
