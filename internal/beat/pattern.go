// Package beat plays the decorative backing loop heard while recording.
package beat

import (
	"strings"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/pkg/collections"
)

// Steps is the length of every pattern.
const Steps = 8

// Intensity is the loudness class of a step. Zero is a rest.
type Intensity float64

const (
	Rest  Intensity = 0
	Hat   Intensity = 0.25
	Snare Intensity = 0.5
	Kick  Intensity = 1
)

// toneLength is how long each hit rings out.
const toneLength = 100 * time.Millisecond

// On reports whether the step makes a sound.
func (i Intensity) On() bool {
	return i > 0
}

// Tone is the hit for this intensity at the given master volume.
func (i Intensity) Tone(volume float64) audio.Tone {
	t := audio.Tone{ //nolint:exhaustruct // frequency and waveform set below
		Peak:     volume * float64(i),
		Attack:   audio.DefaultAttack,
		Duration: toneLength,
	}

	switch {
	case i > 0.7:
		t.Frequency, t.Waveform = 60, audio.Sawtooth
	case i > 0.3:
		t.Frequency, t.Waveform = 200, audio.Square
	default:
		t.Frequency, t.Waveform = 400, audio.Square
	}

	return t
}

// Pattern is one fixed eight step loop.
type Pattern struct {
	// Number is 1-based, as shown to the player.
	Number int
	Name   string
	Steps  [Steps]Intensity
}

const (
	k = Kick
	s = Snare
	h = Hat
	o = Rest
)

var patterns = []Pattern{
	{Number: 1, Name: "Basic boom-bap", Steps: [Steps]Intensity{k, o, o, h, s, o, h, o}},
	{Number: 2, Name: "Trap-style", Steps: [Steps]Intensity{k, o, h, o, s, o, h, h}},
	{Number: 3, Name: "Old school", Steps: [Steps]Intensity{k, h, o, k, o, s, o, o}},
	{Number: 4, Name: "Minimal", Steps: [Steps]Intensity{k, o, o, o, s, o, h, o}},
	{Number: 5, Name: "Heavy", Steps: [Steps]Intensity{k, k, h, o, s, o, k, h}},
}

// Patterns returns the five built-in patterns in order.
func Patterns() []Pattern {
	return append([]Pattern(nil), patterns...)
}

// Notation renders the pattern as a compact step string, e.g. "K..HS.H.".
func (p Pattern) Notation() string {
	var b strings.Builder
	for _, step := range p.Steps {
		switch step {
		case Kick:
			b.WriteByte('K')
		case Snare:
			b.WriteByte('S')
		case Hat:
			b.WriteByte('H')
		default:
			b.WriteByte('.')
		}
	}

	return b.String()
}

// Hits counts the steps that sound.
func (p Pattern) Hits() int {
	return collections.Count(p.Steps[:], Intensity.On)
}
