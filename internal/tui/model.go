package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnyrenius/awesome-audio-plugins/plugin/param"
)

const (
	fineStep   = 0.01
	coarseStep = 0.1

	barWidth     = 30
	meterFloorDB = -60.0

	// RefreshInterval is the meter redraw period.
	RefreshInterval = 50 * time.Millisecond
)

// PeakReader is the level source shown in the meter row.
type PeakReader interface {
	PeakDB() float64
}

// TickMsg triggers a meter refresh.
type TickMsg time.Time

// StatusMsg replaces the status line, e.g. with a startup warning.
type StatusMsg string

// Model is the Bubbletea model for the parameter editor.
type Model struct {
	Title    string
	Params   *param.Set
	Meter    PeakReader
	Selected int
	PeakDB   float64
	Status   string

	Width int
}

// NewModel returns a model editing params. meter may be nil.
func NewModel(title string, params *param.Set, meter PeakReader) Model {
	return Model{
		Title:  title,
		Params: params,
		Meter:  meter,
		PeakDB: math.Inf(-1),
	}
}

// Init starts the meter refresh loop.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles key presses and meter ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.Meter != nil {
			m.PeakDB = m.Meter.PeakDB()
		}
		return m, tick()

	case StatusMsg:
		m.Status = string(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.Params.Len()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < n-1 {
			m.Selected++
		}
	case "left", "h":
		m.nudge(-fineStep)
	case "right", "l":
		m.nudge(fineStep)
	case "shift+left", "H":
		m.nudge(-coarseStep)
	case "shift+right", "L":
		m.nudge(coarseStep)
	case "r":
		m.Params.Reset()
		m.Status = "parameters reset to defaults"
	}
	return m, nil
}

func (m Model) nudge(delta float32) {
	if m.Params.Len() == 0 {
		return
	}
	m.Params.At(m.Selected).Add(delta)
}

// View renders the parameter list, the meter and a key legend.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")

	for i, p := range m.Params.All() {
		cursor := "  "
		name := nameStyle.Render(p.Name())
		if i == m.Selected {
			cursor = "> "
			name = selectedNameStyle.Render(p.Name())
		}
		lo, hi := p.Range()
		b.WriteString(cursor)
		b.WriteString(name)
		b.WriteString(barStyle.Render(bar(p.Get(), lo, hi, barWidth)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f", p.Get())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.meterRow())
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString(m.Status)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select  ←/→ adjust  shift+←/→ coarse  r reset  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) meterRow() string {
	db := m.PeakDB
	fill := 0.0
	if !math.IsInf(db, -1) && !math.IsNaN(db) {
		fill = (db - meterFloorDB) / -meterFloorDB
	}
	row := "  " + nameStyle.Render("Peak") + meterStyle.Render(bar(float32(fill), 0, 1, barWidth))
	if db >= 0 {
		return row + clipStyle.Render(fmt.Sprintf(" %6.1f dB", db))
	}
	if math.IsInf(db, -1) || db < meterFloorDB {
		return row + valueStyle.Render("-inf dB")
	}
	return row + valueStyle.Render(fmt.Sprintf("%.1f", db)) + " dB"
}

// bar renders v within [lo, hi] as a fixed-width horizontal bar.
func bar(v, lo, hi float32, width int) string {
	frac := 0.0
	if hi > lo {
		frac = float64((v - lo) / (hi - lo))
	}
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}
