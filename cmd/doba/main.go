package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alkime/doba/internal/audio"
	"github.com/alkime/doba/internal/beat"
	"github.com/alkime/doba/internal/booth"
	"github.com/alkime/doba/internal/config"
	"github.com/alkime/doba/internal/judge"
	"github.com/alkime/doba/internal/logger"
	"github.com/alkime/doba/internal/share"
	"github.com/alkime/doba/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the doba command structure.
type CLI struct {
	// Default command (runs when no subcommand given)
	Play PlayCmd `cmd:"" default:"withargs" help:"Start a freestyle round in the terminal"`

	// Subcommands
	Devices  DevicesCmd  `cmd:"" help:"List available audio devices"`
	Patterns PatternsCmd `cmd:"" help:"Print the beat patterns"`
	Judge    JudgeCmd    `cmd:"" help:"Run the judging sequence without the UI"`
}

// PlayCmd is the default command that runs the game.
type PlayCmd struct {
	Volume       float64       `flag:"" default:"-1" help:"Beat volume between 0 and 1 (negative keeps DOBA_BEAT_VOLUME)"`
	Mute         bool          `flag:"" help:"Start with the beat muted"`
	ShareCommand string        `flag:"" optional:"" help:"Command that receives the share text on stdin"`
	MaxDuration  time.Duration `flag:"" optional:"" help:"Stop recording automatically after this long"`
}

// Run executes the play command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *PlayCmd) Run(cfg *config.Config) error {
	c.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	// the TUI owns stdout, so logs go to the file sink or nowhere
	sink, closeSink, err := logger.OpenSink(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSink(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	logger.SetupLogger(cfg, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	speaker := audio.OpenSpeaker(ctx, audio.NewDevice(audio.DefaultDeviceConfig(cfg.SampleRate)), cfg.SampleRate)
	defer speaker.Close(ctx)

	mic := booth.New(booth.Options{
		SampleRate:  cfg.SampleRate,
		MaxDuration: cfg.MaxRecording,
		NewDevice:   audio.NewDevice,
		Player:      speaker,
		Encode:      audio.Encode,
		Now:         time.Now,
	})
	defer mic.Release(ctx)

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // game randomness

	gen := beat.NewGenerator(speaker, beat.Options{
		Rand:      rng,
		NewTicker: beat.NewStdTicker,
		Volume:    cfg.BeatVolume,
		Muted:     cfg.BeatMuted,
		OnPattern: func(p beat.Pattern) {
			slog.Info("beat pattern selected", "number", p.Number, "name", p.Name)
		},
	})
	defer gen.Stop()

	// the renderer and the OSC52 fallback both write the terminal
	console := share.NewConsole(os.Stdout)

	sharer := share.New(share.Options{
		Command:   cfg.ShareCommand,
		Run:       share.RunCommand,
		Clipboard: &share.SystemClipboard{},
		Terminal:  share.OSC52{Out: console},
	})

	p := tea.NewProgram(tui.New(tui.Config{
		Ctx:           ctx,
		Cancel:        cancel,
		Mic:           mic,
		Beat:          gen,
		Sharer:        sharer,
		Player:        speaker,
		Rand:          rng,
		JudgeMinDelay: cfg.JudgeMinDelay,
		JudgeMaxDelay: cfg.JudgeMaxDelay,
		ToastDuration: cfg.ToastDuration,
	}), tea.WithAltScreen(), tea.WithOutput(console))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	fmt.Println("\nkeep spitting. bye!")

	return nil
}

// apply lets flags override the environment.
func (c *PlayCmd) apply(cfg *config.Config) {
	if c.Volume >= 0 {
		cfg.BeatVolume = c.Volume
	}

	if c.Mute {
		cfg.BeatMuted = true
	}

	if c.ShareCommand != "" {
		cfg.ShareCommand = c.ShareCommand
	}

	if c.MaxDuration > 0 {
		cfg.MaxRecording = c.MaxDuration
	}
}

// DevicesCmd lists available audio devices.
type DevicesCmd struct{}

// Run executes the devices command.
func (dcmd *DevicesCmd) Run() error {
	slog.Info("Enumerating audio devices...")

	adev := audio.NewDevice(nil)
	devices, err := adev.EnumerateDevices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to enumerate audio devices: %w", err)
	}

	for _, dev := range devices {
		slog.Info("Audio Device",
			"name", dev.Name,
			"isDefault", dev.IsDefault,
			"formatCount", dev.FormatCount,
			"formats", dev.Formats,
		)
	}

	return nil
}

// PatternsCmd prints every beat pattern with its step notation.
type PatternsCmd struct{}

// Run executes the patterns command.
//
//nolint:unparam // error return required by Kong interface
func (pcmd *PatternsCmd) Run() error {
	for _, p := range beat.Patterns() {
		fmt.Printf("%d  %s  %d hits  %s\n", p.Number, p.Notation(), p.Hits(), p.Name)
	}

	return nil
}

// JudgeCmd runs the judging script and prints the score.
type JudgeCmd struct {
	JSON bool   `flag:"" name:"json" help:"Print the score as JSON"`
	Seed uint64 `flag:"" optional:"" help:"Seed for repeatable runs (0 picks one)"`
	Fast bool   `flag:"" help:"Skip the step delays"`
}

// Run executes the judge command.
func (jc *JudgeCmd) Run(cfg *config.Config) error {
	seed := jc.Seed
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec // game randomness
	}

	rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // game randomness

	minDelay, maxDelay := cfg.JudgeMinDelay, cfg.JudgeMaxDelay
	if jc.Fast {
		minDelay, maxDelay = 0, 0
	}

	script := judge.NewScript(rng, minDelay, maxDelay)

	err := judge.Run(context.Background(), script, func(step judge.Step) {
		slog.Info(step.Label, "progress", fmt.Sprintf("%.0f%%", step.Progress))
	})
	if err != nil {
		return fmt.Errorf("judging failed: %w", err)
	}

	score := judge.Generate(rng)

	if jc.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(score); err != nil {
			return fmt.Errorf("failed to encode score: %w", err)
		}

		return nil
	}

	perf := judge.Rate(score.Overall)
	fmt.Printf("%s %s  %d/%d\n", perf.Emoji, perf.Level, score.Overall, judge.MaxScore)

	for _, c := range score.Categories.All() {
		fmt.Printf("  %-11s %2d/%d %s\n", c.Name, c.Score, judge.MaxScore, judge.TierOf(c.Score).Emoji())
	}

	fmt.Printf("\n%s\n\n", score.Feedback)

	for _, h := range score.Highlights() {
		fmt.Printf("  * %s\n", h)
	}

	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "doba: %v\n", err)
		os.Exit(1)
	}

	// text logs for the non-TUI subcommands; play swaps in its own handler
	logger.SetupCLILogger(cfg, os.Stdout)

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("doba"),
		kong.Description("Freestyle battle game: drop your bars, get judged."),
		kong.Bind(cfg),
	)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
