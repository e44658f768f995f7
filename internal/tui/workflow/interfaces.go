package workflow

import (
	"context"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/internal/beat"
	"github.com/alkime/doba/internal/share"
	"github.com/alkime/doba/pkg/uictl"
)

// Mic is the recording booth as the recording stage sees it.
type Mic interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (audio.Clip, error)
	Playback() error
	Reset()
	Release(ctx context.Context)
	Clip() (audio.Clip, bool)
	Recording() bool
	Levels() uictl.Levels[int16]
	Timer() uictl.CappedDial[time.Duration]
}

// Beat is the backing loop played while recording.
type Beat interface {
	Start(ctx context.Context) error
	Stop()
	Playing() bool
	Pattern() (beat.Pattern, bool)
	Position() int
	// Nudge moves the volume by whole steps.
	Nudge(steps int)
	MuteKnob() uictl.Knob
	VolumeSlider() uictl.Slider[float64]
}

// Sharer sends the result line somewhere.
type Sharer interface {
	Share(ctx context.Context, text string) (share.Method, error)
}

// TonePlayer plays synthesized tones back to back.
type TonePlayer interface {
	PlaySequence(tones ...audio.Tone)
}
