// Package beatstrip renders the beat generator's status line: pattern number,
// step lights, mute and volume.
package beatstrip

import (
	"fmt"
	"strings"

	"github.com/alkime/doba/internal/beat"
	"github.com/alkime/doba/internal/tui/style"
)

// State is everything the strip shows.
type State struct {
	Pattern  beat.Pattern
	Chosen   bool
	Playing  bool
	Position int
	Muted    bool
	Volume   float64
}

const volumeCells = 10

// Render draws the strip on one line.
func Render(s State) string {
	var sb strings.Builder

	if s.Muted {
		sb.WriteString(style.Warning.Render("🔇 muted "))
	} else {
		sb.WriteString(style.Label.Render("🔊 "))
	}

	sb.WriteString(volumeBar(s.Volume))
	sb.WriteString("  ")

	if !s.Chosen {
		sb.WriteString(style.Muted.Render("Beat Pattern: -"))
		return sb.String()
	}

	sb.WriteString(style.Subtitle.Render(fmt.Sprintf("Beat Pattern: %d", s.Pattern.Number)))

	if s.Playing {
		sb.WriteString("  ")
		sb.WriteString(lights(s.Pattern, s.Position))
	}

	return sb.String()
}

func volumeBar(v float64) string {
	filled := min(max(int(v*volumeCells+0.5), 0), volumeCells)

	return style.Progress.Render(strings.Repeat("█", filled)) +
		style.Muted.Render(strings.Repeat("░", volumeCells-filled))
}

func lights(p beat.Pattern, pos int) string {
	var sb strings.Builder

	for i, step := range p.Steps {
		if i > 0 {
			sb.WriteString(" ")
		}

		switch {
		case i == pos && step.On():
			sb.WriteString(style.Title.Render("●"))
		case step.On():
			sb.WriteString(style.Progress.Render("●"))
		default:
			sb.WriteString(style.Muted.Render("○"))
		}
	}

	return sb.String()
}
