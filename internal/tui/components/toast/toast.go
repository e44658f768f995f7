// Package toast shows short-lived notifications above the active stage.
package toast

import (
	"time"

	"github.com/alkime/doba/internal/tui/style"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDuration is how long a toast stays up when none is configured.
const DefaultDuration = 3 * time.Second

// Kind picks the toast's styling.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// ShowMsg asks the host to display a toast.
type ShowMsg struct {
	Kind Kind
	Text string
}

type expireMsg struct {
	id int
}

// Success returns a command that shows a success toast.
func Success(text string) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Kind: KindSuccess, Text: text} }
}

// Error returns a command that shows an error toast.
func Error(text string) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Kind: KindError, Text: text} }
}

// Model holds at most one toast; a new one replaces the old.
type Model struct {
	ttl     time.Duration
	seq     int
	current *ShowMsg
}

// New returns an empty toast area. A non-positive ttl uses DefaultDuration.
func New(ttl time.Duration) Model {
	if ttl <= 0 {
		ttl = DefaultDuration
	}

	return Model{ttl: ttl} //nolint:exhaustruct // nothing shown yet
}

// Update shows and expires toasts.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		m.seq++
		m.current = &msg
		id := m.seq

		return m, tea.Tick(m.ttl, func(time.Time) tea.Msg { return expireMsg{id: id} })

	case expireMsg:
		// a newer toast keeps its own timer
		if msg.id == m.seq {
			m.current = nil
		}
	}

	return m, nil
}

// Current returns the toast on screen, if any.
func (m Model) Current() (ShowMsg, bool) {
	if m.current == nil {
		return ShowMsg{}, false //nolint:exhaustruct // none shown
	}

	return *m.current, true
}

// View renders the toast line, or nothing.
func (m Model) View() string {
	if m.current == nil {
		return ""
	}

	if m.current.Kind == KindError {
		return style.Error.Render("✗ " + m.current.Text)
	}

	return style.Success.Render("✓ " + m.current.Text)
}
