package audio

import (
	"encoding/binary"
	"math"
	"sync"
)

type voice struct {
	samples []int16
	pos     int
}

// Mixer sums any number of queued voices into one mono S16LE stream.
// Add is called from the UI side and Fill from the audio thread.
type Mixer struct {
	mu     sync.Mutex
	voices []*voice
}

// NewMixer returns an idle mixer.
func NewMixer() *Mixer {
	return &Mixer{}
}

// Add queues samples to start playing on the next Fill.
func (m *Mixer) Add(samples []int16) {
	if len(samples) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.voices = append(m.voices, &voice{samples: samples})
}

// Fill writes the next len(out)/2 mixed frames into out and drops finished voices.
func (m *Mixer) Fill(out []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frames := len(out) / bytesPerSample
	for i := range frames {
		var sum int32
		for _, v := range m.voices {
			if v.pos < len(v.samples) {
				sum += int32(v.samples[v.pos])
				v.pos++
			}
		}

		sum = max(min(sum, math.MaxInt16), math.MinInt16)
		binary.LittleEndian.PutUint16(out[i*bytesPerSample:], uint16(int16(sum))) //nolint:gosec // clamped above
	}

	live := m.voices[:0]
	for _, v := range m.voices {
		if v.pos < len(v.samples) {
			live = append(live, v)
		}
	}
	clear(m.voices[len(live):])
	m.voices = live
}

// Active returns how many voices still have samples left.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.voices)
}

// Clear silences every queued voice.
func (m *Mixer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.voices = nil
}
