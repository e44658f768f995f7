// Package share hands the result line to the outside world: a configured share
// command when there is one, the clipboard otherwise.
package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.design/x/clipboard"
)

// Method says how the text left the app.
type Method int

const (
	MethodNative Method = iota
	MethodClipboard
	MethodTerminal
)

func (m Method) String() string {
	switch m {
	case MethodNative:
		return "native"
	case MethodClipboard:
		return "clipboard"
	case MethodTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Copied reports whether the text ended up on a clipboard rather than in a share target.
func (m Method) Copied() bool {
	return m != MethodNative
}

// Runner executes a share command with text on stdin.
type Runner func(ctx context.Context, name string, args []string, stdin string) error

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// Options configures a Sharer. Zero values use the real system.
type Options struct {
	// Command is split on whitespace, e.g. "termux-share -a send".
	Command string
	Run     Runner
	// Clipboard is tried first when copying.
	Clipboard Copier
	// Terminal is the last resort; it always succeeds from our side.
	// Defaults to OSC52 on a Console over stdout.
	Terminal Copier
}

// Sharer shares result text. Sharing never fails: every path ends in a copy.
type Sharer struct {
	command   []string
	run       Runner
	clipboard Copier
	terminal  Copier
}

// New builds a Sharer.
func New(opts Options) *Sharer {
	s := &Sharer{
		command:   strings.Fields(opts.Command),
		run:       opts.Run,
		clipboard: opts.Clipboard,
		terminal:  opts.Terminal,
	}

	if s.run == nil {
		s.run = RunCommand
	}

	if s.clipboard == nil {
		s.clipboard = &SystemClipboard{}
	}

	if s.terminal == nil {
		s.terminal = OSC52{Out: NewConsole(os.Stdout)}
	}

	return s
}

// Share tries the share command, then the clipboard, then OSC52.
// The returned error is informational; the text was still copied.
func (s *Sharer) Share(ctx context.Context, text string) (Method, error) {
	var errs []error

	if len(s.command) > 0 {
		err := s.run(ctx, s.command[0], s.command[1:], text)
		if err == nil {
			slog.Info("results shared", "method", MethodNative.String(), "command", s.command[0])
			return MethodNative, nil
		}

		slog.Warn("share command failed, copying instead", "command", s.command[0], "error", err)
		errs = append(errs, fmt.Errorf("share command: %w", err))
	}

	err := s.clipboard.Copy(text)
	if err == nil {
		slog.Info("results shared", "method", MethodClipboard.String())
		return MethodClipboard, errors.Join(errs...)
	}

	slog.Debug("system clipboard unavailable", "error", err)
	errs = append(errs, fmt.Errorf("clipboard: %w", err))

	if err := s.terminal.Copy(text); err != nil {
		errs = append(errs, fmt.Errorf("terminal clipboard: %w", err))
	}

	slog.Info("results shared", "method", MethodTerminal.String())

	return MethodTerminal, errors.Join(errs...)
}

// RunCommand is the default Runner.
func RunCommand(ctx context.Context, name string, args []string, stdin string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

// SystemClipboard writes through golang.design/x/clipboard, initializing it once.
type SystemClipboard struct {
	once    sync.Once
	initErr error
}

func (sc *SystemClipboard) Copy(text string) error {
	sc.once.Do(func() {
		sc.initErr = clipboard.Init()
	})

	if sc.initErr != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", sc.initErr)
	}

	clipboard.Write(clipboard.FmtText, []byte(text))

	return nil
}

// OSC52 asks the terminal to set its clipboard with an escape sequence.
// While a TUI is running Out should be the same Console the program renders to.
type OSC52 struct {
	Out io.Writer
}

func (o OSC52) Copy(text string) error {
	if o.Out == nil {
		return errors.New("no terminal output")
	}

	termenv.NewOutput(o.Out).Copy(text)

	return nil
}
