package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alkime/doba/internal/tui/components/toast"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecording(mic *mockMic, bt *mockBeat) *recordingStage {
	return NewRecording(context.Background(), 1, mic, bt).(*recordingStage) //nolint:forcetypeassert // constructor contract
}

// press sends a key and feeds stopwatch bookkeeping back the way the runtime would.
func press(t *testing.T, r *recordingStage, km tea.KeyMsg) []tea.Msg {
	t.Helper()

	_, cmd := r.Update(km)
	msgs := drain(cmd)

	for _, msg := range msgs {
		switch msg.(type) {
		case stopwatch.StartStopMsg, stopwatch.ResetMsg:
			r.Update(msg)
		}
	}

	return msgs
}

func toastTexts(msgs []tea.Msg) []string {
	var out []string
	for _, m := range msgs {
		if show, ok := m.(toast.ShowMsg); ok {
			out = append(out, show.Text)
		}
	}
	return out
}

func TestRecording_RecordStopSubmit(t *testing.T) {
	mic := &mockMic{}
	bt := newMockBeat()
	r := newTestRecording(mic, bt)

	assert.Equal(t, recordingReady, r.state)
	assert.Contains(t, r.View(), "Ready to Record")
	assert.Contains(t, r.View(), "Pro Tips")

	msgs := press(t, r, keySpace)
	assert.Equal(t, recordingLive, r.state)
	assert.Equal(t, 1, mic.starts)
	assert.True(t, bt.playing, "beat runs while capturing")
	assert.Equal(t, []string{toastRecordingStarted}, toastTexts(msgs))
	assert.Contains(t, r.View(), "Recording...")
	assert.Contains(t, r.View(), "Beat Pattern: 1")

	msgs = press(t, r, keySpace)
	assert.Equal(t, recordingFinishing, r.state)
	assert.False(t, bt.playing)

	fin, ok := find[takeFinishedMsg](msgs)
	require.True(t, ok)
	require.NoError(t, fin.err)

	_, cmd := r.Update(fin)
	assert.Equal(t, []string{toastRecordingStopped}, toastTexts(drain(cmd)))
	assert.Equal(t, recordingDone, r.state)
	assert.Contains(t, r.View(), "Recording Complete")

	press(t, r, runes("p"))
	assert.Equal(t, 1, mic.played)

	msgs = press(t, r, keyEnter)
	done, ok := find[RecordingCompleteMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, []byte("mp3"), done.Clip.Data)
}

func TestRecording_MicFailure(t *testing.T) {
	mic := &mockMic{startErr: errors.New("permission denied")}
	bt := newMockBeat()
	r := newTestRecording(mic, bt)

	msgs := press(t, r, keySpace)

	show, ok := find[toast.ShowMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, toast.KindError, show.Kind)
	assert.Equal(t, toastMicFailed, show.Text)

	assert.Equal(t, recordingReady, r.state, "stays ready so the user can retry")
	assert.Zero(t, bt.starts)

	mic.startErr = nil
	press(t, r, keySpace)
	assert.Equal(t, recordingLive, r.state)
}

func TestRecording_SubmitNeedsTake(t *testing.T) {
	r := newTestRecording(&mockMic{}, newMockBeat())

	_, cmd := r.Update(keyEnter)
	assert.Nil(t, cmd)

	press(t, r, keySpace)
	_, cmd = r.Update(keyEnter)
	assert.Nil(t, cmd, "cannot submit while recording")
}

func TestRecording_Reset(t *testing.T) {
	mic := &mockMic{}
	r := newTestRecording(mic, newMockBeat())

	press(t, r, keySpace)
	fin, _ := find[takeFinishedMsg](press(t, r, keySpace))
	r.Update(fin)
	require.Equal(t, recordingDone, r.state)

	press(t, r, runes("r"))
	assert.Equal(t, recordingReady, r.state)
	_, ok := mic.Clip()
	assert.False(t, ok)

	_, cmd := r.Update(keyEnter)
	assert.Nil(t, cmd)
}

func TestRecording_BackReleasesEverything(t *testing.T) {
	mic := &mockMic{}
	bt := newMockBeat()
	r := newTestRecording(mic, bt)

	press(t, r, keySpace)
	msgs := press(t, r, keyEsc)
	_, ok := find[BackMsg](msgs)
	require.True(t, ok)

	r.Teardown()
	r.Teardown()
	assert.Equal(t, 1, mic.released)
	assert.False(t, mic.Recording())
	assert.False(t, bt.playing)

	_, cmd := r.Update(keySpace)
	assert.Nil(t, cmd, "torn down stage does nothing")
	assert.Equal(t, 1, mic.starts)
}

func TestRecording_StaleTakeIgnored(t *testing.T) {
	r := newTestRecording(&mockMic{}, newMockBeat())

	press(t, r, keySpace)
	press(t, r, keySpace)

	r.Update(takeFinishedMsg{gen: r.gen + 1})
	assert.Equal(t, recordingFinishing, r.state)
}

func TestRecording_AutoStopAtLimit(t *testing.T) {
	mic := &mockMic{limit: 2 * time.Second}
	bt := newMockBeat()
	r := newTestRecording(mic, bt)

	assert.Contains(t, r.View(), "0:00 / 0:02")

	press(t, r, keySpace)
	require.True(t, r.stopwatch.Running())

	mic.setElapsed(2 * time.Second)
	r.Update(stopwatch.TickMsg{ID: r.stopwatch.ID()})

	assert.Equal(t, recordingFinishing, r.state)
	assert.False(t, bt.playing)
}

func TestRecording_BeatControls(t *testing.T) {
	bt := newMockBeat()
	r := newTestRecording(&mockMic{}, bt)

	press(t, r, runes("+"))
	assert.InDelta(t, 0.4, bt.volume.v, 1e-9)

	press(t, r, runes("-"))
	press(t, r, runes("-"))
	assert.InDelta(t, 0.2, bt.volume.v, 1e-9)
	assert.Equal(t, -1, bt.nudges, "volume keys step through the beat")

	press(t, r, runes("m"))
	assert.True(t, bt.mute.state)
	assert.Contains(t, r.View(), "muted")
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0:00", formatClock(0))
	assert.Equal(t, "0:59", formatClock(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "1:05", formatClock(65*time.Second))
	assert.Equal(t, "12:00", formatClock(12*time.Minute))
}

func TestRecording_Program(t *testing.T) {
	checker := defaultChecker()
	mic := &mockMic{}

	tm := teatest.NewTestModel(t, NewRecording(context.Background(), 1, mic, newMockBeat()),
		teatest.WithInitialTermSize(120, 40))

	checker.checkString(t, tm, "Ready to Record")

	tm.Send(keySpace)
	checker.checkString(t, tm, "Recording...")

	tm.Send(keySpace)
	checker.checkString(t, tm, "Recording Complete")

	require.NoError(t, tm.Quit())
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	_, ok := mic.Clip()
	assert.True(t, ok)
}
