package audio

import "time"

const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99

	fanfareNote = 150 * time.Millisecond
)

// Fanfare is the three note rising arpeggio played for a top score.
func Fanfare(peak float64) []Tone {
	notes := []float64{noteC5, noteE5, noteG5}
	tones := make([]Tone, len(notes))

	for i, f := range notes {
		tones[i] = Tone{
			Frequency: f,
			Waveform:  Sine,
			Peak:      peak,
			Attack:    DefaultAttack,
			Duration:  fanfareNote,
		}
	}

	return tones
}
