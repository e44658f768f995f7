package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/internal/tui/components/beatstrip"
	"github.com/alkime/doba/internal/tui/components/keyhelp"
	"github.com/alkime/doba/internal/tui/components/toast"
	"github.com/alkime/doba/internal/tui/components/waveform"
	"github.com/alkime/doba/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	toastRecordingStarted = "Recording started! Drop your bars!"
	toastRecordingStopped = "Recording stopped!"
	toastMicFailed        = "Failed to access microphone"

	waveformWidth  = 48
	waveformHeight = 3
)

type recordingState int

const (
	recordingReady recordingState = iota
	recordingLive
	recordingFinishing
	recordingDone
)

// takeFinishedMsg reports the result of stopping the microphone.
type takeFinishedMsg struct {
	gen  int
	clip audio.Clip
	err  error
}

// recordingKeyMap defines the key bindings for the recording stage.
type recordingKeyMap struct {
	Toggle     key.Binding
	Play       key.Binding
	Reset      key.Binding
	Submit     key.Binding
	Back       key.Binding
	Mute       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
}

func defaultRecordingKeyMap() recordingKeyMap {
	return recordingKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/stop recording"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play back"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "record again"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit for judging"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute beat"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "louder"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "quieter"),
		),
	}
}

// recordingStage represents the recording stage UI state.
type recordingStage struct {
	ctx       context.Context
	gen       int
	keys      recordingKeyMap
	mic       Mic
	beat      Beat
	state     recordingState
	spinner   spinner.Model
	stopwatch stopwatch.Model
	waveform  waveform.Model
	tornDown  bool
}

// NewRecording creates the recording stage. gen tags its delayed messages.
func NewRecording(ctx context.Context, gen int, mic Mic, beat Beat) tea.Model {
	s := spinner.New()
	s.Spinner = spinner.Points

	r := &recordingStage{
		ctx:       ctx,
		gen:       gen,
		keys:      defaultRecordingKeyMap(),
		mic:       mic,
		beat:      beat,
		state:     recordingReady,
		spinner:   s,
		stopwatch: stopwatch.NewWithInterval(time.Second),
		waveform:  waveform.New(mic.Levels(), waveformWidth, waveformHeight),
		tornDown:  false,
	}
	r.syncKeys()

	return r
}

// Init returns the initial command for the recording stage.
func (r *recordingStage) Init() tea.Cmd {
	return r.spinner.Tick
}

// Update handles messages for the recording stage.
func (r *recordingStage) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if r.tornDown {
		return r, nil
	}

	switch typedMsg := teaMsg.(type) {
	case tea.KeyMsg:
		return r, r.handleKey(typedMsg)

	case takeFinishedMsg:
		if typedMsg.gen != r.gen {
			return r, nil
		}

		return r, r.finishTake(typedMsg)

	case stopwatch.TickMsg, stopwatch.StartStopMsg, stopwatch.ResetMsg:
		var cmd tea.Cmd
		r.stopwatch, cmd = r.stopwatch.Update(teaMsg)

		if r.state == recordingLive && r.reachedLimit() {
			slog.Info("max recording duration reached, stopping")
			return r, tea.Batch(cmd, r.stop())
		}

		return r, cmd

	case waveform.TickMsg:
		var cmd tea.Cmd
		r.waveform, cmd = r.waveform.Update(typedMsg)

		return r, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(typedMsg)

		return r, cmd
	}

	return r, nil
}

func (r *recordingStage) handleKey(km tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(km, r.keys.Toggle):
		if r.state == recordingLive {
			return r.stop()
		}

		return r.start()

	case key.Matches(km, r.keys.Play):
		if err := r.mic.Playback(); err != nil {
			slog.Warn("playback failed", "error", err)
			return toast.Error("Nothing to play back")
		}

		return nil

	case key.Matches(km, r.keys.Reset):
		r.mic.Reset()
		r.state = recordingReady
		r.syncKeys()

		return r.stopwatch.Reset()

	case key.Matches(km, r.keys.Submit):
		clip, ok := r.mic.Clip()
		if !ok {
			return nil
		}

		return emit(RecordingCompleteMsg{Clip: clip})

	case key.Matches(km, r.keys.Back):
		return emit(BackMsg{})

	case key.Matches(km, r.keys.Mute):
		r.beat.MuteKnob().Toggle()

	case key.Matches(km, r.keys.VolumeUp):
		r.beat.Nudge(1)

	case key.Matches(km, r.keys.VolumeDown):
		r.beat.Nudge(-1)
	}

	return nil
}

func (r *recordingStage) start() tea.Cmd {
	if r.state != recordingReady {
		return nil
	}

	if err := r.mic.Start(r.ctx); err != nil {
		slog.Error("failed to start recording", "error", err)
		return toast.Error(toastMicFailed)
	}

	if err := r.beat.Start(r.ctx); err != nil {
		slog.Warn("beat did not start", "error", err)
	}

	r.state = recordingLive
	r.syncKeys()

	var waveCmd tea.Cmd
	r.waveform, waveCmd = r.waveform.Start()

	return tea.Batch(
		r.stopwatch.Reset(),
		r.stopwatch.Start(),
		waveCmd,
		toast.Success(toastRecordingStarted),
	)
}

func (r *recordingStage) stop() tea.Cmd {
	if r.state != recordingLive {
		return nil
	}

	r.beat.Stop()
	r.waveform = r.waveform.Stop()
	r.state = recordingFinishing
	r.syncKeys()

	ctx, mic, gen := r.ctx, r.mic, r.gen

	return tea.Batch(
		r.stopwatch.Stop(),
		func() tea.Msg {
			clip, err := mic.Stop(ctx)
			return takeFinishedMsg{gen: gen, clip: clip, err: err}
		},
	)
}

func (r *recordingStage) finishTake(msg takeFinishedMsg) tea.Cmd {
	if msg.err != nil {
		slog.Error("failed to finish recording", "error", msg.err)
		r.state = recordingReady
		r.syncKeys()

		return tea.Batch(r.stopwatch.Reset(), toast.Error("Recording failed"))
	}

	r.state = recordingDone
	r.syncKeys()

	return toast.Success(toastRecordingStopped)
}

func (r *recordingStage) reachedLimit() bool {
	elapsed, limit := r.mic.Timer().Cap()

	return limit > 0 && elapsed >= limit
}

// syncKeys enables only the bindings that do something in the current state.
func (r *recordingStage) syncKeys() {
	done := r.state == recordingDone

	r.keys.Toggle.SetEnabled(r.state == recordingReady || r.state == recordingLive)
	r.keys.Play.SetEnabled(done)
	r.keys.Reset.SetEnabled(done)
	r.keys.Submit.SetEnabled(done)
	r.keys.Back.SetEnabled(r.state != recordingFinishing)
}

// Teardown stops the beat and gives the microphone back.
func (r *recordingStage) Teardown() {
	if r.tornDown {
		return
	}

	r.tornDown = true
	r.beat.Stop()
	r.mic.Release(r.ctx)
}

// View renders the recording stage UI.
func (r *recordingStage) View() string {
	var sb strings.Builder

	switch r.state {
	case recordingReady:
		sb.WriteString(style.Title.Render("Ready to Record"))
	case recordingLive:
		sb.WriteString(r.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(style.Error.Render("Recording..."))
	case recordingFinishing:
		sb.WriteString(r.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(style.Warning.Render("Finishing take..."))
	case recordingDone:
		sb.WriteString(style.Success.Render("Recording Complete"))
	}

	sb.WriteString("  ")
	sb.WriteString(style.Subtitle.Render(r.clock()))
	sb.WriteString("\n\n")

	sb.WriteString(r.waveform.View())
	sb.WriteString("\n\n")

	sb.WriteString(beatstrip.Render(r.beatState()))
	sb.WriteString("\n\n")

	if r.state == recordingReady {
		sb.WriteString(style.Label.Render("💡 Pro Tips:"))
		sb.WriteString("\n")
		for _, tip := range []string{
			"Keep it between 30-60 seconds",
			"Focus on flow, wordplay, and creativity",
			"Have fun and be yourself!",
		} {
			sb.WriteString(style.Bullet.Render("• "))
			sb.WriteString(style.Muted.Render(tip))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(keyhelp.Line(r.keys.Toggle, r.keys.Play, r.keys.Reset, r.keys.Submit, r.keys.Back))
	sb.WriteString(keyhelp.Line(r.keys.Mute, r.keys.VolumeUp, r.keys.VolumeDown))

	return sb.String()
}

func (r *recordingStage) clock() string {
	s := formatClock(r.stopwatch.Elapsed())
	if _, limit := r.mic.Timer().Cap(); limit > 0 {
		s += " / " + formatClock(limit)
	}

	return s
}

func (r *recordingStage) beatState() beatstrip.State {
	p, chosen := r.beat.Pattern()

	return beatstrip.State{
		Pattern:  p,
		Chosen:   chosen,
		Playing:  r.beat.Playing(),
		Position: r.beat.Position(),
		Muted:    r.beat.MuteKnob().Read(),
		Volume:   r.beat.VolumeSlider().Read(),
	}
}

// formatClock renders whole seconds as m:ss.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)

	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
