package workflow

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alkime/doba/internal/judge"
	"github.com/alkime/doba/internal/tui/components/keyhelp"
	"github.com/alkime/doba/internal/tui/components/labeledspinner"
	"github.com/alkime/doba/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const categoryCellWidth = 18

// stepDoneMsg fires when a judging step's delay has elapsed.
type stepDoneMsg struct {
	gen   int
	index int
}

type judgingKeyMap struct {
	Continue key.Binding
}

func defaultJudgingKeyMap() judgingKeyMap {
	return judgingKeyMap{
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view detailed feedback"),
			key.WithDisabled(),
		),
	}
}

// judgingStage plays the judging script one step at a time, then shows the
// overall score.
type judgingStage struct {
	gen      int
	keys     judgingKeyMap
	rng      judge.Rand
	script   judge.Script
	step     int
	spinner  labeledspinner.Model
	score    *judge.Score
	tornDown bool
}

// NewJudging creates the judging stage with a freshly drawn script.
func NewJudging(gen int, rng judge.Rand, minDelay, maxDelay time.Duration) tea.Model {
	script := judge.NewScript(rng, minDelay, maxDelay)
	first := script[0]

	return &judgingStage{
		gen:    gen,
		keys:   defaultJudgingKeyMap(),
		rng:    rng,
		script: script,
		step:   0,
		spinner: labeledspinner.New(spinner.Dot, "AI Judge at Work", "", "🎤 Our AI is analyzing your freestyle...").
			SetStep(first.Label, first.Progress),
		score:    nil,
		tornDown: false,
	}
}

func (j *judgingStage) Init() tea.Cmd {
	slog.Debug("judging started", "total", j.script.Total())

	return tea.Batch(j.spinner.Init(), j.wait())
}

func (j *judgingStage) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if j.tornDown {
		return j, nil
	}

	switch typedMsg := teaMsg.(type) {
	case stepDoneMsg:
		if typedMsg.gen != j.gen || typedMsg.index != j.step {
			return j, nil
		}

		return j, j.advance()

	case tea.KeyMsg:
		if key.Matches(typedMsg, j.keys.Continue) && j.score != nil {
			return j, emit(JudgingCompleteMsg{Score: *j.score})
		}

	case spinner.TickMsg:
		if j.score != nil {
			return j, nil
		}

		var cmd tea.Cmd
		j.spinner, cmd = j.spinner.Update(typedMsg)

		return j, cmd
	}

	return j, nil
}

// wait schedules the end of the current step.
func (j *judgingStage) wait() tea.Cmd {
	step := j.script[j.step]
	gen := j.gen

	return tea.Tick(step.Delay, func(time.Time) tea.Msg {
		return stepDoneMsg{gen: gen, index: step.Index}
	})
}

func (j *judgingStage) advance() tea.Cmd {
	if j.script[j.step].Last() {
		score := judge.Generate(j.rng)
		j.score = &score
		j.keys.Continue.SetEnabled(true)

		slog.Info("judging complete", "overall", score.Overall)

		return nil
	}

	j.step++
	next := j.script[j.step]
	j.spinner = j.spinner.SetStep(next.Label, next.Progress)

	return j.wait()
}

// Teardown drops any pending step.
func (j *judgingStage) Teardown() {
	j.tornDown = true
}

func (j *judgingStage) View() string {
	if j.score == nil {
		return j.spinner.View() + "\n" + style.Muted.Render("This usually takes 10-15 seconds") + "\n"
	}

	var sb strings.Builder

	sb.WriteString(style.Title.Render("Judging Complete!"))
	sb.WriteString("\n\n")
	sb.WriteString(style.Score.Render(fmt.Sprintf("%d/%d", j.score.Overall, judge.MaxScore)))
	sb.WriteString("\n")
	sb.WriteString(style.Subtitle.Render("Overall Score"))
	sb.WriteString("\n\n")
	sb.WriteString(categoryGrid(j.score.Categories))
	sb.WriteString("\n\n")
	sb.WriteString(keyhelp.Line(j.keys.Continue))

	return sb.String()
}

// categoryGrid lays the four category scores out two by two.
func categoryGrid(c judge.Categories) string {
	cells := make([]string, 0, 4)
	for _, cat := range c.All() {
		cells = append(cells, style.Card.Width(categoryCellWidth).Align(lipgloss.Center).Render(
			style.Score.Render(fmt.Sprintf("%d/%d", cat.Score, judge.MaxScore))+"\n"+style.Muted.Render(cat.Name),
		))
	}

	rows := make([]string, 0, 2)
	for i := 0; i < len(cells); i += 2 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:min(i+2, len(cells))]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
