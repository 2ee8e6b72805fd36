package models

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/hud"
	"github.com/golangdaddy/vroom/pkg/sim"
)

// Session represents the summary of one race
type Session struct {
	Name         string    `json:"name"`
	Seed         int64     `json:"seed"`
	Layout       string    `json:"layout"`
	FPS          int       `json:"fps"`
	Ticks        int64     `json:"ticks"`
	Elapsed      float64   `json:"elapsed"`
	Distance     float64   `json:"distance"`
	FinalSpeed   float64   `json:"final_speed"`
	TopSpeed     float64   `json:"top_speed"`
	TopMPH       float64   `json:"top_mph"`
	Rerolls      int       `json:"rerolls"`
	OffRoadTicks int64     `json:"off_road_ticks"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSession creates an empty summary for a race run with cfg
func NewSession(name string, cfg *config.Config) *Session {
	now := time.Now()
	return &Session{
		Name:      name,
		Seed:      cfg.Seed,
		Layout:    cfg.Layout.Name,
		FPS:       cfg.FPS,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record copies the counters of st into the summary
func (s *Session) Record(st sim.State) {
	s.Ticks = st.Ticks
	s.Elapsed = st.Elapsed(s.FPS)
	s.Distance = st.Distance
	s.FinalSpeed = st.Vehicle.Speed
	s.TopSpeed = st.TopSpeed
	s.TopMPH = st.TopSpeed * hud.MPHPerSpeedUnit
	s.Rerolls = st.Rerolls
	s.OffRoadTicks = st.OffRoadTicks
	s.UpdatedAt = time.Now()
}

// OffRoadShare is the fraction of ticks spent off the road.
func (s *Session) OffRoadShare() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.OffRoadTicks) / float64(s.Ticks)
}

// SaveToFile saves the session to a JSON file
func (s *Session) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadFromFile loads a session from a JSON file
func LoadFromFile(filename string) (*Session, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", filename, err)
	}

	return &s, nil
}
