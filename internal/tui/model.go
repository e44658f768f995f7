// Package tui is the bubbletea host for the game: it owns the controller and
// renders the active stage under a fixed header.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/alkime/doba/internal/game"
	"github.com/alkime/doba/internal/judge"
	"github.com/alkime/doba/internal/tui/components/keyhelp"
	"github.com/alkime/doba/internal/tui/components/phases"
	"github.com/alkime/doba/internal/tui/components/toast"
	"github.com/alkime/doba/internal/tui/style"
	"github.com/alkime/doba/internal/tui/workflow"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Config carries everything the stages need.
type Config struct {
	Ctx    context.Context
	Cancel context.CancelFunc

	Mic    workflow.Mic
	Beat   workflow.Beat
	Sharer workflow.Sharer
	Player workflow.TonePlayer
	Rand   judge.Rand

	JudgeMinDelay time.Duration
	JudgeMaxDelay time.Duration
	ToastDuration time.Duration
}

type model struct {
	config Config
	ctrl   *game.Controller
	keys   workflow.GlobalKeyMap
	phases phases.Model
	toast  toast.Model
}

// New creates the host model, starting at the intro.
func New(config Config) tea.Model {
	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	if config.JudgeMinDelay == 0 && config.JudgeMaxDelay == 0 {
		config.JudgeMinDelay, config.JudgeMaxDelay = judge.DefaultMinDelay, judge.DefaultMaxDelay
	}

	return &model{
		config: config,
		ctrl:   game.NewController(),
		keys:   workflow.DefaultGlobalKeyMap(),
		phases: phases.New(game.StageIntro.String(), introBuilder),
		toast:  toast.New(config.ToastDuration),
	}
}

func introBuilder(int) tea.Model {
	return workflow.NewIntro()
}

func (m *model) Init() tea.Cmd {
	return m.phases.Init()
}

func (m *model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := teaMsg.(tea.KeyMsg); ok {
		if key.Matches(km, m.keys.ForceQuit) || key.Matches(km, m.keys.Quit) {
			return m, m.quit()
		}
	}

	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(teaMsg)

	if cmd, handled := m.transition(teaMsg); handled {
		return m, tea.Batch(toastCmd, cmd)
	}

	var cmd tea.Cmd
	m.phases, cmd = m.phases.Update(teaMsg)

	return m, tea.Batch(toastCmd, cmd)
}

// transition applies a stage change message to the controller and swaps in
// the next stage. handled is false for every other message.
func (m *model) transition(teaMsg tea.Msg) (tea.Cmd, bool) {
	var (
		err   error
		next  game.Stage
		build phases.Builder
	)

	switch typedMsg := teaMsg.(type) {
	case workflow.StartGameMsg:
		err = m.ctrl.Start()
		next, build = game.StageRecording, m.recordingBuilder

	case workflow.RecordingCompleteMsg:
		err = m.ctrl.RecordingComplete(typedMsg.Clip)
		next, build = game.StageJudging, m.judgingBuilder

	case workflow.JudgingCompleteMsg:
		err = m.ctrl.JudgingComplete(typedMsg.Score)
		next, build = game.StageResults, m.resultsBuilder

	case workflow.PlayAgainMsg:
		err = m.ctrl.PlayAgain()
		next, build = game.StageIntro, introBuilder

	case workflow.BackMsg:
		err = m.ctrl.Back()
		next, build = game.StageIntro, introBuilder

	default:
		return nil, false
	}

	if errors.Is(err, game.ErrWrongStage) {
		slog.Warn("ignoring transition", "error", err)
		return nil, true
	} else if err != nil {
		slog.Error("transition failed", "error", err)
		return nil, true
	}

	var cmd tea.Cmd
	m.phases, cmd = m.phases.Swap(next.String(), build)

	return cmd, true
}

func (m *model) recordingBuilder(gen int) tea.Model {
	return workflow.NewRecording(m.config.Ctx, gen, m.config.Mic, m.config.Beat)
}

func (m *model) judgingBuilder(gen int) tea.Model {
	return workflow.NewJudging(gen, m.config.Rand, m.config.JudgeMinDelay, m.config.JudgeMaxDelay)
}

func (m *model) resultsBuilder(gen int) tea.Model {
	score := m.ctrl.Score()
	if score == nil {
		score = &judge.Score{} //nolint:exhaustruct // unreachable after JudgingComplete
	}

	return workflow.NewResults(m.config.Ctx, gen, *score, m.config.Sharer, m.config.Player)
}

func (m *model) quit() tea.Cmd {
	m.phases.Teardown()

	if m.config.Cancel != nil {
		m.config.Cancel()
	}

	return tea.Quit
}

func (m *model) View() string {
	var sb strings.Builder

	sb.WriteString(style.Brand.Render("DOBA"))
	sb.WriteString("  ")
	sb.WriteString(style.Subtitle.Render("Battle for rap supremacy"))
	sb.WriteString("\n")

	if t := m.toast.View(); t != "" {
		sb.WriteString(t)
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.phases.View())
	sb.WriteString("\n")
	sb.WriteString(keyhelp.Line(m.keys.Quit, m.keys.ForceQuit))

	return sb.String()
}
