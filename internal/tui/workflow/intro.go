// Package workflow provides the game's stage models.
package workflow

import (
	"strings"

	"github.com/alkime/doba/internal/tui/components/keyhelp"
	"github.com/alkime/doba/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type introKeyMap struct {
	Start key.Binding
}

func defaultIntroKeyMap() introKeyMap {
	return introKeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start freestyle"),
		),
	}
}

type feature struct {
	title string
	blurb string
}

var features = []feature{
	{"Record Your Flow", "Hit record and unleash your freestyle. No limits, just pure creativity."},
	{"AI Analysis", "Our AI judges your flow, wordplay, creativity, and overall performance."},
	{"Get Scored", "Receive detailed feedback and a score out of 10. Level up your skills!"},
}

var howItWorks = []string{
	"Press record",
	"Freestyle for 30-60s",
	"AI analyzes your bars",
	"Get your score & feedback",
}

type introStage struct {
	keys introKeyMap
}

// NewIntro creates the landing stage.
func NewIntro() tea.Model {
	return &introStage{keys: defaultIntroKeyMap()}
}

func (i *introStage) Init() tea.Cmd {
	return nil
}

func (i *introStage) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := teaMsg.(tea.KeyMsg); ok && key.Matches(km, i.keys.Start) {
		return i, emit(StartGameMsg{})
	}

	return i, nil
}

func (i *introStage) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("Drop Your Bars"))
	sb.WriteString("\n")
	sb.WriteString(style.Subtitle.Render("Let AI judge your freestyle skills. Spit fire, get scored, level up."))
	sb.WriteString("\n\n")

	cards := make([]string, len(features))
	for n, f := range features {
		cards[n] = style.Card.Width(26).Render(style.Label.Render(f.title) + "\n" + style.Muted.Render(f.blurb))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	sb.WriteString("\n\n")

	sb.WriteString(style.Title.Render("How It Works"))
	sb.WriteString("\n")
	for n, step := range howItWorks {
		sb.WriteString(style.Bullet.Render(string(rune('1'+n)) + ". "))
		sb.WriteString(step)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(keyhelp.Render(i.keys.Start, "\n"))

	return sb.String()
}
