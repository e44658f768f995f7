package audio

import (
	"math"
	"time"
)

// Waveform selects the oscillator shape of a Tone.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// String returns the oscillator name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

const (
	// DefaultAttack is the linear ramp from silence to peak.
	DefaultAttack = 10 * time.Millisecond
	// envelopeFloor is the gain the exponential decay lands on at the end of a tone.
	envelopeFloor = 0.001
)

// Tone is a parametric percussive sound: a linear attack to Peak followed by
// an exponential decay that reaches envelopeFloor at Duration.
type Tone struct {
	Frequency float64
	Waveform  Waveform
	// Peak gain in [0,1]. Zero renders nothing.
	Peak     float64
	Attack   time.Duration
	Duration time.Duration
}

// Render synthesizes the tone as mono int16 samples.
func (t Tone) Render(sampleRate int) []int16 {
	if t.Peak <= 0 || t.Duration <= 0 || sampleRate <= 0 {
		return nil
	}

	peak := math.Min(t.Peak, 1)
	n := sampleCount(t.Duration, sampleRate)
	attack := min(t.Attack.Seconds(), t.Duration.Seconds())
	total := t.Duration.Seconds()

	out := make([]int16, n)
	for i := range out {
		at := float64(i) / float64(sampleRate)
		gain := envelope(at, attack, total, peak)
		v := oscillate(t.Waveform, t.Frequency*at) * gain
		out[i] = int16(math.Round(v * math.MaxInt16))
	}

	return out
}

// Sequence renders tones back to back.
func Sequence(sampleRate int, tones ...Tone) []int16 {
	var out []int16
	for _, t := range tones {
		rendered := t.Render(sampleRate)
		if rendered == nil {
			// keep the rhythm when a note is silent
			rendered = make([]int16, sampleCount(t.Duration, sampleRate))
		}
		out = append(out, rendered...)
	}

	return out
}

func sampleCount(d time.Duration, sampleRate int) int {
	return max(0, int(int64(d)*int64(sampleRate)/int64(time.Second)))
}

func envelope(at, attack, total, peak float64) float64 {
	if at < attack {
		return peak * at / attack
	}

	span := total - attack
	if span <= 0 {
		return peak
	}

	progress := (at - attack) / span
	if peak <= envelopeFloor {
		return peak * (1 - progress)
	}

	return peak * math.Pow(envelopeFloor/peak, progress)
}

// oscillate returns the waveform value in [-1,1] after the given number of cycles.
func oscillate(w Waveform, cycles float64) float64 {
	_, frac := math.Modf(cycles)

	switch w {
	case Square:
		if frac < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*frac - 1
	case Triangle:
		return 4*math.Abs(frac-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * frac)
	}
}
