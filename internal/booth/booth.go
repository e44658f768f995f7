// Package booth owns the microphone for the recording stage: it captures one
// take, turns it into a clip and can play it back for review.
package booth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/pkg/uictl"
)

var (
	// ErrMicUnavailable covers both a missing capture device and one that refuses to start.
	ErrMicUnavailable = errors.New("microphone unavailable")
	// ErrNothingRecorded is returned by Playback before a take has been stopped.
	ErrNothingRecorded = errors.New("nothing recorded")
	// ErrTakeDiscarded is returned by Stop when Release or Reset dropped the take
	// while it was being encoded.
	ErrTakeDiscarded = errors.New("take discarded")
)

const (
	// captureBuffer is how many packets can queue between the audio thread and the take.
	captureBuffer = 64
	// levelWindow is about 50ms at 16kHz.
	levelWindow = 800
)

// Player plays mono samples. *audio.Speaker satisfies it.
type Player interface {
	Play(samples []int16)
	// Hush cuts off anything still playing.
	Hush()
	SampleRate() int
}

// Encoder turns a finished take into a clip. audio.Encode is the default.
type Encoder func(pcm []byte, config audio.EncoderConfig) (audio.Clip, error)

// Options configures a Booth.
type Options struct {
	SampleRate int
	// MaxDuration caps a take. Zero means unlimited.
	MaxDuration time.Duration
	// NewDevice opens capture hardware. Defaults to audio.NewDevice.
	NewDevice func(conf *audio.DeviceConfig) audio.Device
	// Player is used for Playback. May be nil.
	Player Player
	// Encode defaults to audio.Encode.
	Encode Encoder
	// Now defaults to time.Now.
	Now func() time.Time
}

// Booth records at most one take at a time. All methods are safe for
// concurrent use. Stop may be slow as it encodes the take, but it does not
// hold the lock while doing so.
type Booth struct {
	sampleRate  int
	maxDuration time.Duration
	newDevice   func(conf *audio.DeviceConfig) audio.Device
	player      Player
	encode      Encoder
	now         func() time.Time
	meter       *audio.LevelMeter

	mu        sync.Mutex
	dev       audio.Device
	dataC     chan audio.DataPacket
	take      *audio.Take
	startedAt time.Time
	elapsed   time.Duration
	pcm       []byte
	clip      *audio.Clip
	// finishing is set while a stopped take is encoded outside the lock.
	finishing bool
	// gen changes whenever the current take is replaced or dropped.
	gen int
}

// capture is a detached microphone stream waiting to be shut down.
type capture struct {
	dev   audio.Device
	dataC chan audio.DataPacket
	take  *audio.Take
}

// New returns an idle booth.
func New(opts Options) *Booth {
	if opts.SampleRate <= 0 {
		opts.SampleRate = audio.DefaultSampleRate
	}

	if opts.NewDevice == nil {
		opts.NewDevice = audio.NewDevice
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Encode == nil {
		opts.Encode = audio.Encode
	}

	return &Booth{ //nolint:exhaustruct // recording state starts empty
		sampleRate:  opts.SampleRate,
		maxDuration: opts.MaxDuration,
		newDevice:   opts.NewDevice,
		player:      opts.Player,
		encode:      opts.Encode,
		now:         opts.Now,
		meter:       audio.NewLevelMeter(opts.SampleRate, levelWindow),
	}
}

// Start opens the microphone and begins a new take, discarding any previous one.
// On failure the returned error wraps ErrMicUnavailable and no device is held.
func (b *Booth) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev != nil {
		return errors.New("already recording")
	}

	if b.finishing {
		return errors.New("previous take is still finishing")
	}

	dev := b.newDevice(audio.DefaultDeviceConfig(b.sampleRate))
	dataC := make(chan audio.DataPacket, captureBuffer)

	if err := dev.CaptureInto(ctx, dataC); err != nil {
		return fmt.Errorf("%w: %w", ErrMicUnavailable, err)
	}

	b.meter.Reset()

	take, err := audio.NewTake(dataC, b.meter)
	if err != nil {
		dev.Dealloc(ctx)
		return fmt.Errorf("failed to create take: %w", err)
	}

	if err := take.Start(ctx); err != nil {
		dev.Dealloc(ctx)
		return fmt.Errorf("failed to start take: %w", err)
	}

	if err := dev.Start(ctx); err != nil {
		dev.Dealloc(ctx)
		close(dataC)
		_, _ = take.Wait()

		return fmt.Errorf("%w: %w", ErrMicUnavailable, err)
	}

	b.dev = dev
	b.dataC = dataC
	b.take = take
	b.gen++
	b.startedAt = b.now()
	b.elapsed = 0
	b.pcm = nil
	b.clip = nil

	slog.Info("recording started", "sampleRate", b.sampleRate)

	return nil
}

// Stop releases the microphone and finalizes the take into a clip.
// Encoding runs without the lock, so the timer and levels stay readable.
func (b *Booth) Stop(ctx context.Context) (audio.Clip, error) {
	b.mu.Lock()
	if b.dev == nil {
		b.mu.Unlock()
		return audio.Clip{}, errors.New("not recording")
	}

	c := b.detach()
	b.finishing = true
	gen := b.gen
	b.mu.Unlock()

	clip, pcm, err := b.finish(ctx, c)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.finishing = false

	if err != nil {
		return audio.Clip{}, err
	}

	if gen != b.gen {
		return audio.Clip{}, ErrTakeDiscarded
	}

	b.pcm = pcm
	b.clip = &clip

	slog.Info("recording stopped",
		"pcmBytes", len(pcm),
		"clipBytes", len(clip.Data),
		"duration", clip.Duration)

	return clip, nil
}

func (b *Booth) finish(ctx context.Context, c capture) (audio.Clip, []byte, error) {
	pcm, err := c.close(ctx)
	if err != nil {
		return audio.Clip{}, nil, fmt.Errorf("failed to finish take: %w", err)
	}

	clip, err := b.encode(pcm, audio.EncoderConfig{ //nolint:exhaustruct // default buffer threshold
		SampleRate: b.sampleRate,
		Channels:   audio.DefaultChannels,
	})
	if err != nil {
		return audio.Clip{}, nil, err
	}

	return clip, pcm, nil
}

// Release gives the microphone back without producing a clip, silences any
// playback and forgets the finished take. It is safe to call at any time.
func (b *Booth) Release(ctx context.Context) {
	b.mu.Lock()

	var (
		c    capture
		open = b.dev != nil
	)
	if open {
		c = b.detach()
	}

	b.clear()
	b.mu.Unlock()

	if open {
		if _, err := c.close(ctx); err != nil {
			slog.Debug("discarded take ended with error", "error", err)
		}
		slog.Info("microphone released")
	}
}

// Reset discards the finished take and stops its playback.
func (b *Booth) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clear()
}

// Playback queues the finished take on the player.
func (b *Booth) Playback() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev != nil || len(b.pcm) == 0 {
		return ErrNothingRecorded
	}

	if b.player == nil {
		return errors.New("no playback device")
	}

	if b.player.SampleRate() != b.sampleRate {
		slog.Warn("playback sample rate differs from capture",
			"capture", b.sampleRate, "playback", b.player.SampleRate())
	}

	b.player.Hush()
	b.player.Play(audio.BytesToInt16(b.pcm))

	return nil
}

// Clip is the finished take, if there is one.
func (b *Booth) Clip() (audio.Clip, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.clip == nil {
		return audio.Clip{}, false //nolint:exhaustruct // no take
	}

	return *b.clip, true
}

// Recording reports whether the microphone is open.
func (b *Booth) Recording() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dev != nil
}

// Elapsed is the running time of the current take, or the length of the last one.
func (b *Booth) Elapsed() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev != nil {
		return b.now().Sub(b.startedAt)
	}

	return b.elapsed
}

// MaxDuration is the take length limit, zero when unlimited.
func (b *Booth) MaxDuration() time.Duration {
	return b.maxDuration
}

// Levels exposes recent input samples for the waveform view.
func (b *Booth) Levels() uictl.Levels[int16] {
	return meterLevels{meter: b.meter}
}

// Timer exposes elapsed time against MaxDuration.
func (b *Booth) Timer() uictl.CappedDial[time.Duration] {
	return boothTimer{b: b}
}

// detach hands the open stream to the caller and freezes the elapsed time.
// mu must be held.
func (b *Booth) detach() capture {
	c := capture{dev: b.dev, dataC: b.dataC, take: b.take}

	b.elapsed = b.now().Sub(b.startedAt)
	b.dev = nil
	b.dataC = nil
	b.take = nil

	return c
}

// close stops the hardware and waits for the take to drain.
func (c capture) close(ctx context.Context) ([]byte, error) {
	if err := c.dev.Stop(ctx); err != nil {
		slog.Error("failed to stop capture device", "error", err)
	}
	c.dev.Dealloc(ctx)
	close(c.dataC)

	return c.take.Wait()
}

// clear drops the finished take. mu must be held.
func (b *Booth) clear() {
	if b.pcm != nil && b.player != nil {
		b.player.Hush()
	}

	b.gen++
	b.pcm = nil
	b.clip = nil
	b.elapsed = 0
	b.meter.Reset()
}

type meterLevels struct {
	meter *audio.LevelMeter
}

func (ml meterLevels) Read() []int16 {
	return ml.meter.Read()
}

type boothTimer struct {
	b *Booth
}

func (bt boothTimer) Read() time.Duration {
	return bt.b.Elapsed()
}

func (bt boothTimer) Cap() (time.Duration, time.Duration) {
	return bt.Read(), bt.b.maxDuration
}
