package audio_test

import (
	"math"
	"testing"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kick(peak float64) audio.Tone {
	return audio.Tone{
		Frequency: 60,
		Waveform:  audio.Sawtooth,
		Peak:      peak,
		Attack:    audio.DefaultAttack,
		Duration:  100 * time.Millisecond,
	}
}

func TestTone_RenderLength(t *testing.T) {
	t.Parallel()

	samples := kick(0.3).Render(16000)
	require.Len(t, samples, 1600)
}

func TestTone_ZeroPeakIsSilent(t *testing.T) {
	t.Parallel()

	require.Nil(t, kick(0).Render(16000))
	require.Nil(t, kick(-1).Render(16000))
	require.Nil(t, kick(0.5).Render(0))
}

func TestTone_Envelope(t *testing.T) {
	t.Parallel()

	const rate = 16000
	tone := audio.Tone{
		Frequency: 400,
		Waveform:  audio.Square,
		Peak:      0.5,
		Attack:    audio.DefaultAttack,
		Duration:  100 * time.Millisecond,
	}
	samples := tone.Render(rate)

	peakLimit := int(math.Round(0.5 * math.MaxInt16))
	maxAbs := 0
	for _, s := range samples {
		maxAbs = max(maxAbs, abs(int(s)))
	}
	assert.LessOrEqual(t, maxAbs, peakLimit, "never louder than peak")
	assert.Greater(t, maxAbs, peakLimit/2, "reaches near peak after the attack")

	assert.Equal(t, int16(0), samples[0], "starts from silence")

	tail := samples[len(samples)-10:]
	for _, s := range tail {
		assert.LessOrEqual(t, abs(int(s)), int(0.002*math.MaxInt16)+1, "decays to the floor")
	}
}

func TestTone_Waveforms(t *testing.T) {
	t.Parallel()

	for _, w := range []audio.Waveform{audio.Sine, audio.Square, audio.Sawtooth, audio.Triangle} {
		t.Run(w.String(), func(t *testing.T) {
			t.Parallel()

			samples := audio.Tone{Frequency: 200, Waveform: w, Peak: 1, Duration: 50 * time.Millisecond}.Render(8000)
			require.Len(t, samples, 400)

			var positive, negative bool
			for _, s := range samples {
				positive = positive || s > 0
				negative = negative || s < 0
			}
			assert.True(t, positive && negative, "oscillates around zero")
		})
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	note := audio.Tone{Frequency: 523.25, Waveform: audio.Sine, Peak: 0.3, Attack: audio.DefaultAttack, Duration: 150 * time.Millisecond}
	rest := audio.Tone{Duration: 50 * time.Millisecond}

	out := audio.Sequence(8000, note, rest, note)
	require.Len(t, out, 1200+400+1200)

	for _, s := range out[1200:1600] {
		require.Equal(t, int16(0), s, "a silent note keeps its slot")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
