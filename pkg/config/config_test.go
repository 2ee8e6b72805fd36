package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, 120.0, cfg.Scene.SkySize)
	assert.Equal(t, 50.0, cfg.Car.MaxSpeed)
	assert.Equal(t, 0.5, cfg.Car.Brake)
	assert.Equal(t, 27.0, cfg.Car.Start.Speed)
	assert.Equal(t, 1.0, cfg.Car.Start.Turn)
	assert.Equal(t, 50.0, cfg.Car.Start.Section)
	assert.Equal(t, "desktop", cfg.Layout.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"ground min equals max", func(c *Config) { c.Scene.Ground.Max = c.Scene.Ground.Min }},
		{"zero width", func(c *Config) { c.Layout.Width = 0 }},
		{"zero max speed", func(c *Config) { c.Car.MaxSpeed = 0 }},
		{"start speed above max", func(c *Config) { c.Car.Start.Speed = 60 }},
		{"start turn out of range", func(c *Config) { c.Car.Start.Turn = 6 }},
		{"section bounds inverted", func(c *Config) { c.Track.SectionMin, c.Track.SectionMax = 9000, 1000 }},
		{"section min not positive", func(c *Config) { c.Track.SectionMin = 0 }},
		{"curve bounds inverted", func(c *Config) { c.Track.CurveMin = 60 }},
		{"curve delta too wide", func(c *Config) { c.Track.MinCurveDelta = 51 }},
		{"road floor above ceiling", func(c *Config) { c.Scene.Road.MinFloor = 500 }},
		{"bad colour", func(c *Config) { c.Colors.Road = "road" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestPalette(t *testing.T) {
	p, err := DefaultConfig().Colors.Palette()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xD4), p.Sky.R)
	assert.Equal(t, uint8(0x60), p.Road.R)
	assert.Equal(t, uint8(0xFF), p.RoadLine.G)
}

func TestRoadWidths(t *testing.T) {
	s := DefaultConfig().Scene

	min, max := s.RoadWidths(800)
	assert.InDelta(t, 80, min, 1e-9)
	assert.InDelta(t, 450, max, 1e-9)

	min, max = s.RoadWidths(390)
	assert.InDelta(t, 60, min, 1e-9)
	assert.InDelta(t, 312, max, 1e-9)
}

func TestBaselines(t *testing.T) {
	l := DefaultConfig().Layout

	wheels, body := l.Baselines(600)
	assert.InDelta(t, 420, wheels, 1e-9)
	assert.InDelta(t, 402, body, 1e-9)

	wheels, body = l.Baselines(400)
	assert.InDelta(t, 280, wheels, 1e-9)
	assert.InDelta(t, 268, body, 1e-9)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mobile")
	require.NotNil(t, cfg)
	assert.True(t, cfg.Layout.TouchControls)
	assert.NoError(t, cfg.Validate())

	assert.Nil(t, GetPreset("tablet"))
	assert.Equal(t, []string{"desktop", "mobile"}, ListPresets())
}

func TestApplyLayout(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyLayout("mobile"))
	assert.Equal(t, 390, cfg.Layout.Width)

	assert.ErrorIs(t, cfg.ApplyLayout("watch"), ErrInvalidConfig)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vroom.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Car.MaxSpeed = 60
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), loaded.Seed)
	assert.Equal(t, 60.0, loaded.Car.MaxSpeed)
	assert.Equal(t, cfg.Colors, loaded.Colors)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\ncar:\n  brake: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 2.0, cfg.Car.Brake)
	assert.Equal(t, DefaultMaxSpeed, cfg.Car.MaxSpeed)
	assert.Equal(t, 60, cfg.FPS)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 0\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
