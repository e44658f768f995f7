package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/internal/judge"
	"github.com/alkime/doba/internal/share"
	"github.com/alkime/doba/internal/tui/components/keyhelp"
	"github.com/alkime/doba/internal/tui/components/toast"
	"github.com/alkime/doba/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	toastShared = "Results shared!"
	toastCopied = "Results copied to clipboard!"

	fanfareVolume = 0.3
)

type sharedMsg struct {
	gen    int
	method share.Method
}

type resultsKeyMap struct {
	Dismiss   key.Binding
	PlayAgain key.Binding
	Share     key.Binding
}

func defaultResultsKeyMap() resultsKeyMap {
	return resultsKeyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "let's go"),
		),
		PlayAgain: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter/a", "freestyle again"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share results"),
		),
	}
}

// resultsStage shows the score breakdown. A celebration prompt sits in front
// of it for top scores until dismissed.
type resultsStage struct {
	ctx         context.Context
	gen         int
	keys        resultsKeyMap
	score       judge.Score
	sharer      Sharer
	player      TonePlayer
	celebrating bool
	sharing     bool
}

// NewResults creates the results stage for score.
func NewResults(ctx context.Context, gen int, score judge.Score, sharer Sharer, player TonePlayer) tea.Model {
	r := &resultsStage{
		ctx:         ctx,
		gen:         gen,
		keys:        defaultResultsKeyMap(),
		score:       score,
		sharer:      sharer,
		player:      player,
		celebrating: score.Celebrate(),
		sharing:     false,
	}
	r.syncKeys()

	return r
}

// Init plays the fanfare for a celebrated score.
func (r *resultsStage) Init() tea.Cmd {
	if !r.celebrating || r.player == nil {
		return nil
	}

	player := r.player

	return func() tea.Msg {
		player.PlaySequence(audio.Fanfare(fanfareVolume)...)
		return nil
	}
}

func (r *resultsStage) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch typedMsg := teaMsg.(type) {
	case tea.KeyMsg:
		return r, r.handleKey(typedMsg)

	case sharedMsg:
		if typedMsg.gen != r.gen {
			return r, nil
		}

		r.sharing = false
		if typedMsg.method.Copied() {
			return r, toast.Success(toastCopied)
		}

		return r, toast.Success(toastShared)
	}

	return r, nil
}

func (r *resultsStage) handleKey(km tea.KeyMsg) tea.Cmd {
	gen := r.gen

	switch {
	case key.Matches(km, r.keys.Dismiss):
		r.celebrating = false
		r.syncKeys()

	case key.Matches(km, r.keys.PlayAgain):
		return emit(PlayAgainMsg{})

	case key.Matches(km, r.keys.Share):
		if r.sharing || r.sharer == nil {
			return nil
		}

		r.sharing = true
		ctx, sharer, text := r.ctx, r.sharer, r.score.ShareText()

		return func() tea.Msg {
			method, err := sharer.Share(ctx, text)
			if err != nil {
				slog.Debug("share fell back", "method", method.String(), "error", err)
			}

			return sharedMsg{gen: gen, method: method}
		}
	}

	return nil
}

func (r *resultsStage) syncKeys() {
	r.keys.Dismiss.SetEnabled(r.celebrating)
	r.keys.PlayAgain.SetEnabled(!r.celebrating)
	r.keys.Share.SetEnabled(!r.celebrating)
}

func (r *resultsStage) View() string {
	if r.celebrating {
		return r.celebrationView()
	}

	perf := judge.Rate(r.score.Overall)

	var sb strings.Builder

	sb.WriteString(style.Title.Render(perf.Emoji + " " + perf.Level))
	sb.WriteString("  ")
	sb.WriteString(style.Score.Render(fmt.Sprintf("%d/%d", r.score.Overall, judge.MaxScore)))
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render("Score Breakdown"))
	sb.WriteString("\n")
	for _, c := range r.score.Categories.All() {
		tier := judge.TierOf(c.Score)
		sb.WriteString(fmt.Sprintf("%-11s", c.Name))
		sb.WriteString(style.Muted.Render(fmt.Sprintf("%-16s", c.Blurb)))
		sb.WriteString(style.Tier(tier).Render(fmt.Sprintf("%2d/%d", c.Score, judge.MaxScore)))
		sb.WriteString(" ")
		sb.WriteString(tier.Emoji())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(style.Label.Render("AI Judge Feedback"))
	sb.WriteString("\n")
	sb.WriteString(style.Card.Width(72).Render(r.score.Feedback))
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render("Highlights:"))
	sb.WriteString("\n")
	for _, h := range r.score.Highlights() {
		sb.WriteString(style.Badge.Render(h))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(keyhelp.Line(r.keys.PlayAgain, r.keys.Share))

	return sb.String()
}

func (r *resultsStage) celebrationView() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("🎉 Outstanding Performance! 🎉"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("You scored %s! That's some serious fire.",
		style.Score.Render(fmt.Sprintf("%d/%d", r.score.Overall, judge.MaxScore))))
	sb.WriteString("\n\n")
	sb.WriteString(keyhelp.Line(r.keys.Dismiss))

	return style.Card.Render(sb.String())
}
