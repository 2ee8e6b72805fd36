// Package dashboard shows a headless race as live telemetry in the terminal.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/golangdaddy/vroom/pkg/game"
	"github.com/golangdaddy/vroom/pkg/hud"
	"github.com/golangdaddy/vroom/pkg/input"
	"github.com/golangdaddy/vroom/pkg/vehicle"
)

const (
	historyCapacity = 300
	// steerTicks is how long a key press holds a control; terminals report no key release.
	steerTicks = 12
	trackWidth = 41
)

var (
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives an engine from the bubbletea loop and keeps a speed history for the chart.
type Model struct {
	engine    *game.Engine
	pilot     *input.Autopilot
	auto      bool
	held      map[input.Signal]int
	history   []float64
	interval  time.Duration
	lastStats game.Stats
	err       error
}

// New returns a dashboard for e. With auto set the autopilot drives.
func New(e *game.Engine, auto bool) Model {
	fps := e.Config().FPS
	if fps <= 0 {
		fps = 60
	}
	return Model{
		engine:   e,
		pilot:    input.NewAutopilot(),
		auto:     auto,
		held:     make(map[input.Signal]int),
		interval: time.Second / time.Duration(fps),
	}
}

// Run starts the race and blocks until the user quits.
func Run(e *game.Engine, auto bool) error {
	e.Start()
	final, err := tea.NewProgram(New(e, auto), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles key presses and steps the race on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			if m.engine.Mode() == game.Playing {
				m.engine.Pause()
			} else {
				m.engine.Start()
			}
		case "r":
			if err := m.engine.Reset(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.history = m.history[:0]
			m.engine.Start()
		case "a":
			m.auto = !m.auto
		case "left", "h":
			m.hold(input.Left)
		case "right", "l":
			m.hold(input.Right)
		case "up", "k":
			m.hold(input.Accelerate)
		case "down", "j":
			m.hold(input.Brake)
		}
	case TickMsg:
		if err := m.step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) hold(sig input.Signal) {
	m.held[sig] = steerTicks
	switch sig {
	case input.Left:
		delete(m.held, input.Right)
	case input.Right:
		delete(m.held, input.Left)
	}
}

// controls returns the held keys and counts them down.
func (m *Model) controls() input.State {
	var in input.State
	for sig, n := range m.held {
		in.Apply(input.Event{Signal: sig, Pressed: true})
		if n <= 1 {
			delete(m.held, sig)
		} else {
			m.held[sig] = n - 1
		}
	}
	return in
}

// step advances the race by one tick and records the speed.
func (m *Model) step() error {
	if m.engine.Mode() != game.Playing {
		return nil
	}
	in := m.controls()
	if m.auto {
		v := m.engine.State().Vehicle
		in = m.pilot.Decide(v.XPos, v.CurrentCurve, v.Speed)
	}
	m.engine.SetControls(in)
	if err := m.engine.Tick(); err != nil {
		return err
	}

	m.lastStats = m.engine.Stats()
	m.history = append(m.history, m.lastStats.MPH())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	return nil
}

func (m Model) View() string {
	st := m.engine.State()
	stats := m.engine.Stats()

	var s strings.Builder
	s.WriteString(headerStyle.Render("VROOM") + "\n")

	status := strings.ToUpper(m.engine.Mode().String())
	if m.auto {
		status += " (autopilot)"
	}
	s.WriteString(status + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption("Speed (MPH)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Speed", fmt.Sprintf("%.0f MPH", stats.MPH()))
	row("Top", fmt.Sprintf("%.0f MPH", stats.MaxSpeed*hud.MPHPerSpeedUnit))
	row("Distance", fmt.Sprintf("%.0f", stats.Distance))
	row("Time", fmt.Sprintf("%.1fs", stats.Elapsed))
	row("Curve", fmt.Sprintf("%.1f -> %.0f", st.Vehicle.CurrentCurve, st.Vehicle.Curve))
	row("Section", fmt.Sprintf("%.0f", st.Vehicle.Section))
	row("Re-rolls", fmt.Sprintf("%d", st.Rerolls))
	row("Off-road", fmt.Sprintf("%d ticks", st.OffRoadTicks))

	s.WriteString("\n" + Track(st.Vehicle.XPos) + "\n")
	if abs(st.Vehicle.XPos) > vehicle.OffRoad {
		s.WriteString(warnStyle.Render("OFF ROAD") + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Restart A:Autopilot Q:Quit\n←→:Steer ↑:Accelerate ↓:Brake"))
	return panelStyle.Render(s.String())
}

// Track draws the lateral position of the car between the road limits. Positive
// xpos is left of centre.
func Track(xpos float64) string {
	half := trackWidth / 2
	col := half - int(xpos/vehicle.XLimit*float64(half)+0.5*sign(xpos))
	if col < 0 {
		col = 0
	}
	if col >= trackWidth {
		col = trackWidth - 1
	}
	cells := []rune(strings.Repeat("-", trackWidth))
	cells[half] = '|'
	cells[col] = 'o'
	return "[" + string(cells) + "]"
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
