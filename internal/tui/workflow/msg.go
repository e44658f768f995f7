package workflow

import (
	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/internal/judge"
	tea "github.com/charmbracelet/bubbletea"
)

// StartGameMsg asks to leave the intro for recording.
type StartGameMsg struct{}

// RecordingCompleteMsg carries a submitted take to judging.
type RecordingCompleteMsg struct {
	Clip audio.Clip
}

// JudgingCompleteMsg carries the score to the results screen.
type JudgingCompleteMsg struct {
	Score judge.Score
}

// PlayAgainMsg returns from results to the intro.
type PlayAgainMsg struct{}

// BackMsg abandons recording and returns to the intro.
type BackMsg struct{}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
