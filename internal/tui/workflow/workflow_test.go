package workflow

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/internal/beat"
	"github.com/alkime/doba/internal/share"
	"github.com/alkime/doba/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// outputChecker provides helpers for testing teatest output.
type outputChecker struct {
	intervl, timeout time.Duration
}

func defaultChecker() outputChecker {
	return outputChecker{
		intervl: 50 * time.Millisecond,
		timeout: 3 * time.Second,
	}
}

func (o outputChecker) check(t *testing.T, tm *teatest.TestModel, checkFunc func(buf []byte) bool) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), checkFunc,
		teatest.WithCheckInterval(o.intervl),
		teatest.WithDuration(o.timeout))
}

func (o outputChecker) checkString(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	o.check(t, tm, func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	})
}

//nolint:gochecknoglobals // test keys
var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

const drainWait = 20 * time.Millisecond

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and any batched or sequenced commands, collecting the
// messages they produce. Commands that block past drainWait (timers) are dropped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(drainWait):
		return nil
	}

	if msg == nil {
		return nil
	}

	// tea.Sequence hides its commands behind an unexported slice type.
	cmds := reflect.TypeOf([]tea.Cmd(nil))
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.CanConvert(cmds) {
		var out []tea.Msg
		for _, c := range v.Convert(cmds).Interface().([]tea.Cmd) { //nolint:forcetypeassert // converted above
			out = append(out, drain(c)...)
		}
		return out
	}

	return []tea.Msg{msg}
}

// cmdOf sends msg to m and returns only the command.
func cmdOf(m tea.Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if typed, ok := m.(T); ok {
			return typed, true
		}
	}

	var zero T
	return zero, false
}

// mockMic implements Mic for testing.
type mockMic struct {
	mu        sync.Mutex
	startErr  error
	recording bool
	clip      *audio.Clip
	starts    int
	released  int
	played    int
	elapsed   time.Duration
	limit     time.Duration
}

func (m *mockMic) Start(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startErr != nil {
		return m.startErr
	}
	m.starts++
	m.recording = true
	m.clip = nil
	return nil
}

func (m *mockMic) Stop(context.Context) (audio.Clip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.recording {
		return audio.Clip{}, errors.New("not recording")
	}
	m.recording = false
	clip := audio.Clip{Data: []byte("mp3"), MediaType: audio.MediaTypeMP3, Duration: 5 * time.Second}
	m.clip = &clip
	return clip, nil
}

func (m *mockMic) Playback() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clip == nil {
		return errors.New("nothing recorded")
	}
	m.played++
	return nil
}

func (m *mockMic) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clip = nil
}

func (m *mockMic) Release(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released++
	m.recording = false
	m.clip = nil
}

func (m *mockMic) Clip() (audio.Clip, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clip == nil {
		return audio.Clip{}, false
	}
	return *m.clip, true
}

func (m *mockMic) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}

func (m *mockMic) Levels() uictl.Levels[int16]            { return &mockLevels{} }
func (m *mockMic) Timer() uictl.CappedDial[time.Duration] { return mockTimer{mic: m} }

func (m *mockMic) setElapsed(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elapsed = d
}

type mockTimer struct{ mic *mockMic }

func (mt mockTimer) Read() time.Duration {
	mt.mic.mu.Lock()
	defer mt.mic.mu.Unlock()
	return mt.mic.elapsed
}

func (mt mockTimer) Cap() (time.Duration, time.Duration) {
	return mt.Read(), mt.mic.limit
}

// mockLevels implements uictl.Levels[int16] for testing.
type mockLevels struct {
	samples []int16
}

func (m *mockLevels) Read() []int16 { return m.samples }

// mockKnob implements uictl.Knob for testing.
type mockKnob struct {
	state bool
}

func (m *mockKnob) Read() bool { return m.state }
func (m *mockKnob) Toggle()    { m.state = !m.state }

// mockSlider implements uictl.Slider[float64] for testing.
type mockSlider struct {
	v float64
}

func (m *mockSlider) Read() float64 { return m.v }
func (m *mockSlider) Set(v float64) { m.v = min(max(v, 0), 1) }

// mockBeat implements Beat for testing.
type mockBeat struct {
	playing bool
	starts  int
	stops   int
	pattern *beat.Pattern
	mute    mockKnob
	volume  mockSlider
	nudges  int
}

func newMockBeat() *mockBeat {
	return &mockBeat{volume: mockSlider{v: 0.3}}
}

func (m *mockBeat) Start(context.Context) error {
	m.starts++
	m.playing = true
	p := beat.Patterns()[0]
	m.pattern = &p
	return nil
}

func (m *mockBeat) Stop() {
	m.stops++
	m.playing = false
}

func (m *mockBeat) Playing() bool { return m.playing }

func (m *mockBeat) Pattern() (beat.Pattern, bool) {
	if m.pattern == nil {
		return beat.Pattern{}, false
	}
	return *m.pattern, true
}

func (m *mockBeat) Position() int                       { return 0 }
func (m *mockBeat) MuteKnob() uictl.Knob                { return &m.mute }
func (m *mockBeat) VolumeSlider() uictl.Slider[float64] { return &m.volume }

func (m *mockBeat) Nudge(steps int) {
	m.nudges += steps
	m.volume.Set(math.Round((m.volume.v+float64(steps)*beat.VolumeStep)*10) / 10)
}

// mockSharer implements Sharer for testing.
type mockSharer struct {
	mu     sync.Mutex
	method share.Method
	texts  []string
}

func (m *mockSharer) Share(_ context.Context, text string) (share.Method, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return m.method, nil
}

// mockPlayer implements TonePlayer for testing.
type mockPlayer struct {
	mu    sync.Mutex
	tones [][]audio.Tone
}

func (m *mockPlayer) PlaySequence(tones ...audio.Tone) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tones = append(m.tones, tones)
}

func (m *mockPlayer) plays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tones)
}
