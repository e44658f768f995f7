// Package waveform draws the live microphone level while a take is recording.
package waveform

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alkime/doba/internal/tui/style"
	"github.com/alkime/doba/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// Block characters for amplitude, index 0 empty through 8 full.
const blockChars = " ▁▂▃▄▅▆▇█"

const (
	frameInterval = 50 * time.Millisecond
	levelsPerRow  = 8
	fullScale     = 32767.0
)

var lastID atomic.Int64

// TickMsg triggers a redraw of the waveform with the matching ID.
type TickMsg struct {
	ID int
}

// Model renders the newest samples from a Levels control as columns of
// block characters, oldest on the left.
type Model struct {
	id     int
	levels uictl.Levels[int16]
	width  int
	height int
	live   bool
}

// New creates a paused waveform width columns wide and height rows tall.
func New(levels uictl.Levels[int16], width, height int) Model {
	return Model{
		id:     int(lastID.Add(1)),
		levels: levels,
		width:  max(width, 1),
		height: max(height, 1),
		live:   false,
	}
}

// ID identifies this waveform's ticks.
func (m Model) ID() int {
	return m.id
}

// Start begins redrawing at about 20 FPS.
func (m Model) Start() (Model, tea.Cmd) {
	if m.live {
		return m, nil
	}

	m.live = true

	return m, m.tick()
}

// Stop freezes the waveform; pending ticks are dropped.
func (m Model) Stop() Model {
	m.live = false
	return m
}

// Live reports whether the waveform is redrawing.
func (m Model) Live() bool {
	return m.live
}

// Init does nothing until Start.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update keeps the redraw loop going while live.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || !m.live {
		return m, nil
	}

	return m, m.tick()
}

// View renders the waveform, or a flat baseline when there is nothing to show.
func (m Model) View() string {
	if m.levels == nil {
		return m.baseline()
	}

	samples := m.levels.Read()
	if len(samples) == 0 {
		return m.baseline()
	}

	return m.bars(samples)
}

func (m Model) tick() tea.Cmd {
	id := m.id

	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

func (m Model) bars(samples []int16) string {
	cols := columnLevels(samples, m.width, m.height*levelsPerRow)
	blocks := []rune(blockChars)

	rows := make([]string, m.height)
	for row := range m.height {
		floor := (m.height - 1 - row) * levelsPerRow

		line := make([]rune, m.width)
		for col, level := range cols {
			fill := min(max(level-floor, 0), levelsPerRow)
			line[col] = blocks[fill]
		}

		rows[row] = style.Progress.Render(string(line))
	}

	return strings.Join(rows, "\n")
}

func (m Model) baseline() string {
	rows := make([]string, m.height)
	for row := range m.height {
		fill := " "
		if row == m.height-1 {
			fill = "▁"
		}
		rows[row] = style.Muted.Render(strings.Repeat(fill, m.width))
	}

	return strings.Join(rows, "\n")
}

// columnLevels buckets samples into width columns and maps each bucket's
// peak to 0..top.
func columnLevels(samples []int16, width, top int) []int {
	levels := make([]int, width)
	bucket := max(1, len(samples)/width)

	for col := range width {
		start := col * bucket
		if start >= len(samples) {
			break
		}

		end := min(start+bucket, len(samples))
		levels[col] = scale(peak(samples[start:end]), top)
	}

	return levels
}

func peak(samples []int16) int {
	p := 0
	for _, s := range samples {
		a := int(s)
		if a < 0 {
			a = -a
		}
		p = max(p, a)
	}

	return min(p, int(fullScale))
}

// scale uses a square root curve so quiet input still shows.
func scale(amp, top int) int {
	if amp <= 0 {
		return 0
	}

	return min(int(math.Sqrt(float64(amp)/fullScale)*float64(top)), top)
}
