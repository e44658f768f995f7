// Package labeledspinner shows a spinner next to a title, with the current
// step label and a progress bar underneath.
package labeledspinner

import (
	"fmt"
	"math"
	"strings"

	"github.com/alkime/doba/internal/tui/style"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const barWidth = 40

// Model is a spinner, title, step label and percent complete.
type Model struct {
	Spinner spinner.Model
	Title   string
	Label   string
	Help    string

	percent float64
	bar     progress.Model
}

// New creates a labeled spinner at 0%.
func New(s spinner.Spinner, title, label, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner: sp,
		Title:   title,
		Label:   label,
		Help:    help,
		percent: 0,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
	}
}

// Init returns the initial command for the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// SetStep updates the label and progress, percent in [0,100].
func (ls Model) SetStep(label string, percent float64) Model {
	ls.Label = label
	ls.percent = min(max(percent, 0), 100)

	return ls
}

// Percent is the rounded percentage shown under the bar.
func (ls Model) Percent() int {
	return int(math.Round(ls.percent))
}

// Update handles spinner tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

		return ls, cmd
	}

	return ls, nil
}

// View renders the labeled spinner.
func (ls Model) View() string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(ls.Title))
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render(ls.Label))
	sb.WriteString("\n")
	sb.WriteString(ls.bar.ViewAs(ls.percent / 100))
	sb.WriteString("\n")
	sb.WriteString(style.Subtitle.Render(fmt.Sprintf("%d%% complete", ls.Percent())))

	if ls.Help != "" {
		sb.WriteString("\n\n")
		sb.WriteString(style.Help.Render(ls.Help))
	}

	return sb.String()
}
