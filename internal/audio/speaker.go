package audio

import (
	"context"
	"log/slog"
)

// Speaker is the game's single synthesis context: one playback device fed by
// a Mixer. Tone playback never fails from the caller's point of view; without
// a working output device the speaker is simply silent.
type Speaker struct {
	dev        Device
	mixer      *Mixer
	sampleRate int
	silent     bool
}

// OpenSpeaker allocates and starts a playback device. A nil dev gives a
// silent speaker, which is also what you get if the device cannot start.
func OpenSpeaker(ctx context.Context, dev Device, sampleRate int) *Speaker {
	s := &Speaker{
		dev:        dev,
		mixer:      NewMixer(),
		sampleRate: sampleRate,
		silent:     dev == nil,
	}

	if s.silent {
		return s
	}

	if err := dev.PlaybackFrom(ctx, s.mixer); err != nil {
		slog.Warn("no playback device, speaker is silent", "error", err)
		s.silent = true

		return s
	}

	if err := dev.Start(ctx); err != nil {
		slog.Warn("failed to start playback device, speaker is silent", "error", err)
		dev.Dealloc(ctx)
		s.silent = true
	}

	return s
}

// Play queues raw mono samples at the speaker's sample rate.
func (s *Speaker) Play(samples []int16) {
	if s.silent {
		return
	}

	s.mixer.Add(samples)
}

// PlayTone renders and queues a tone.
func (s *Speaker) PlayTone(t Tone) {
	s.Play(t.Render(s.sampleRate))
}

// PlaySequence renders and queues tones back to back.
func (s *Speaker) PlaySequence(tones ...Tone) {
	s.Play(Sequence(s.sampleRate, tones...))
}

// Hush drops everything still queued.
func (s *Speaker) Hush() {
	s.mixer.Clear()
}

// SampleRate is the rate samples passed to Play must be in.
func (s *Speaker) SampleRate() int {
	return s.sampleRate
}

// Silent reports whether output is discarded.
func (s *Speaker) Silent() bool {
	return s.silent
}

// Close stops and releases the playback device.
func (s *Speaker) Close(ctx context.Context) {
	s.mixer.Clear()

	if s.dev == nil || s.silent {
		return
	}

	if err := s.dev.Stop(ctx); err != nil {
		slog.Error("failed to stop playback device", "error", err)
	}
	s.dev.Dealloc(ctx)
}
