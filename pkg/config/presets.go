package config

import (
	"fmt"
	"sort"
)

// Layouts are the named screen layouts a session can start with.
var Layouts = map[string]LayoutConfig{
	"desktop": desktopLayout(),
	"mobile":  mobileLayout(),
}

func desktopLayout() LayoutConfig {
	return LayoutConfig{
		Name:               "desktop",
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		HUDInset:           100,
		HUDTop:             100,
		WheelBaseline:      180,
		WheelBaselineRatio: 0.3,
		BodyBaseline:       200,
		BodyBaselineRatio:  0.33,
		ControlSize:        80,
		ControlMargin:      32,
	}
}

// mobileLayout is a portrait phone screen with on-screen steering buttons.
func mobileLayout() LayoutConfig {
	l := desktopLayout()
	l.Name = "mobile"
	l.Width = 390
	l.Height = 724
	l.HUDInset = 70
	l.HUDTop = 80
	l.TouchControls = true
	return l
}

// GetPreset returns the default config with the named layout, or nil if there is none.
func GetPreset(layout string) *Config {
	l, ok := Layouts[layout]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Layout = l
	return cfg
}

// ListPresets returns the layout names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Layouts))
	for name := range Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyLayout swaps in a named layout while keeping the rest of the config.
func (c *Config) ApplyLayout(name string) error {
	l, ok := Layouts[name]
	if !ok {
		return fmt.Errorf("%w: unknown layout %q (have %v)", ErrInvalidConfig, name, ListPresets())
	}
	c.Layout = l
	return nil
}
