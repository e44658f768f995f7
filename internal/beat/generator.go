package beat

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/pkg/collections"
)

const (
	// Interval between steps: 240 BPM, four steps a second.
	Interval = 250 * time.Millisecond
	// DefaultVolume is the master volume a new generator starts at.
	DefaultVolume = 0.3
	// VolumeStep is how far one nudge moves the volume.
	VolumeStep = 0.1
)

// Player is where generated hits go. *audio.Speaker satisfies it.
type Player interface {
	PlayTone(t audio.Tone)
}

// Ticker abstracts time.Ticker so tests can drive steps by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct{ t *time.Ticker }

func (st stdTicker) C() <-chan time.Time { return st.t.C }
func (st stdTicker) Stop()               { st.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Options configures a Generator. Zero values pick sensible defaults.
type Options struct {
	Rand      collections.Intner
	NewTicker func(time.Duration) Ticker
	// Volume is taken as is, including zero. Use DefaultVolume for the usual level.
	Volume float64
	Muted  bool
	// OnPattern is called once per Start with the chosen pattern.
	OnPattern func(Pattern)
}

// Generator loops one randomly chosen pattern through a Player.
// Mute and volume changes apply from the next hit.
type Generator struct {
	player    Player
	rng       collections.Intner
	newTicker func(time.Duration) Ticker
	onPattern func(Pattern)

	volume atomic.Uint64
	muted  atomic.Bool
	pos    atomic.Int32

	mu      sync.Mutex
	pattern *Pattern
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewGenerator returns a stopped generator playing through player.
func NewGenerator(player Player, opts Options) *Generator {
	g := &Generator{ //nolint:exhaustruct // atomics and run state start zeroed
		player:    player,
		rng:       opts.Rand,
		newTicker: opts.NewTicker,
		onPattern: opts.OnPattern,
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // picking a drum loop
	}

	if g.newTicker == nil {
		g.newTicker = NewStdTicker
	}

	g.SetVolume(opts.Volume)
	g.muted.Store(opts.Muted)

	return g
}

// Start picks a pattern and begins stepping through it until Stop or ctx is done.
func (g *Generator) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		return errors.New("beat already playing")
	}

	p, _ := collections.Pick(g.rng, patterns)
	g.pattern = &p
	g.pos.Store(0)

	if g.onPattern != nil {
		g.onPattern(p)
	}

	runCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	ticker := g.newTicker(Interval)

	g.wg.Go(func() {
		defer ticker.Stop()

		step := 0
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C():
				g.pos.Store(int32(step)) //nolint:gosec // step < Steps
				g.hit(p.Steps[step])
				step = (step + 1) % Steps
			}
		}
	})

	return nil
}

// Stop halts the loop and waits for it to exit. No hits are played after it
// returns. Calling it on a stopped generator does nothing. mu stays held
// until the loop is gone so a concurrent Start cannot reuse wg early; the loop
// itself never takes mu.
func (g *Generator) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel == nil {
		return
	}

	g.cancel()
	g.cancel = nil
	g.wg.Wait()
}

// Playing reports whether the loop is running.
func (g *Generator) Playing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.cancel != nil
}

// Pattern is the pattern chosen by the last Start.
func (g *Generator) Pattern() (Pattern, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pattern == nil {
		return Pattern{}, false //nolint:exhaustruct // not chosen yet
	}

	return *g.pattern, true
}

// Position is the index of the step played most recently.
func (g *Generator) Position() int {
	return int(g.pos.Load())
}

func (g *Generator) Muted() bool { return g.muted.Load() }

// Toggle flips mute.
func (g *Generator) Toggle() {
	for {
		old := g.muted.Load()
		if g.muted.CompareAndSwap(old, !old) {
			return
		}
	}
}

// Volume is the master volume in [0,1].
func (g *Generator) Volume() float64 {
	return math.Float64frombits(g.volume.Load())
}

// SetVolume clamps v to [0,1].
func (g *Generator) SetVolume(v float64) {
	if math.IsNaN(v) {
		v = 0
	}

	g.volume.Store(math.Float64bits(min(max(v, 0), 1)))
}

// Nudge moves the volume by delta steps of VolumeStep.
func (g *Generator) Nudge(delta int) {
	v := g.Volume() + float64(delta)*VolumeStep
	g.SetVolume(math.Round(v*10) / 10)
}

func (g *Generator) hit(i Intensity) {
	if !i.On() || g.muted.Load() {
		return
	}

	vol := g.Volume()
	if vol <= 0 {
		return
	}

	g.player.PlayTone(i.Tone(vol))
}
