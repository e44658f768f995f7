package audio

import (
	"encoding/binary"
	"sync"
)

// LevelMeter keeps the most recent microphone samples for the waveform view.
// One goroutine writes while the TUI reads.
type LevelMeter struct {
	mu      sync.RWMutex
	samples []int16
	head    int
	count   int
	window  int
}

// NewLevelMeter holds up to capacity samples and reports the newest window of them.
func NewLevelMeter(capacity, window int) *LevelMeter {
	capacity = max(capacity, 1)
	window = min(max(window, 1), capacity)

	return &LevelMeter{
		samples: make([]int16, capacity),
		window:  window,
	}
}

// Write appends samples, overwriting the oldest once full.
func (m *LevelMeter) Write(samples []int16) {
	if len(samples) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	capacity := len(m.samples)

	// only the tail can survive a write longer than the buffer
	if len(samples) > capacity {
		samples = samples[len(samples)-capacity:]
	}

	for _, s := range samples {
		m.samples[m.head] = s
		m.head = (m.head + 1) % capacity
	}

	m.count = min(m.count+len(samples), capacity)
}

// Read returns the newest window samples, oldest first.
func (m *LevelMeter) Read() []int16 {
	return m.Last(m.window)
}

// Last returns up to n of the newest samples, oldest first.
func (m *LevelMeter) Last(n int) []int16 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.count == 0 || n <= 0 {
		return nil
	}

	n = min(n, m.count)
	capacity := len(m.samples)
	start := (m.head - n + capacity) % capacity

	out := make([]int16, n)
	for i := range out {
		out[i] = m.samples[(start+i)%capacity]
	}

	return out
}

// Reset forgets everything written so far.
func (m *LevelMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.head = 0
	m.count = 0
}

// BytesToInt16 converts S16LE (signed 16-bit little-endian) bytes to int16 samples.
// A trailing odd byte is ignored.
func BytesToInt16(data []byte) []int16 {
	n := len(data) / bytesPerSample
	if n == 0 {
		return nil
	}

	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*bytesPerSample:])) //nolint:gosec // two's complement reinterpretation
	}

	return samples
}

// Int16ToBytes is the inverse of BytesToInt16.
func Int16ToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*bytesPerSample:], uint16(s)) //nolint:gosec // two's complement reinterpretation
	}

	return out
}
