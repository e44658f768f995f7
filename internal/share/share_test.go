package share_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/alkime/doba/internal/share"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCopier struct {
	err    error
	copied []string
}

func (fc *fakeCopier) Copy(text string) error {
	if fc.err != nil {
		return fc.err
	}
	fc.copied = append(fc.copied, text)
	return nil
}

const text = "I just scored 9/10 on FreestyleAI! 🔥"

func TestShare_NativeCommand(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotArgs []string
	var gotStdin string

	clip := &fakeCopier{}
	s := share.New(share.Options{
		Command: "termux-share -a send",
		Run: func(_ context.Context, name string, args []string, stdin string) error {
			gotName, gotArgs, gotStdin = name, args, stdin
			return nil
		},
		Clipboard: clip,
		Terminal:  &fakeCopier{},
	})

	method, err := s.Share(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, share.MethodNative, method)
	assert.False(t, method.Copied())

	assert.Equal(t, "termux-share", gotName)
	assert.Equal(t, []string{"-a", "send"}, gotArgs)
	assert.Equal(t, text, gotStdin)
	assert.Empty(t, clip.copied)
}

func TestShare_FallsBackToClipboard(t *testing.T) {
	t.Parallel()

	clip := &fakeCopier{}
	s := share.New(share.Options{
		Command: "share-it",
		Run: func(context.Context, string, []string, string) error {
			return errors.New("user cancelled")
		},
		Clipboard: clip,
		Terminal:  &fakeCopier{},
	})

	method, err := s.Share(context.Background(), text)
	assert.Equal(t, share.MethodClipboard, method)
	assert.True(t, method.Copied())
	require.Error(t, err, "failure is reported but not fatal")
	assert.Equal(t, []string{text}, clip.copied)
}

func TestShare_NoCommandCopies(t *testing.T) {
	t.Parallel()

	ran := false
	clip := &fakeCopier{}
	s := share.New(share.Options{
		Run: func(context.Context, string, []string, string) error {
			ran = true
			return nil
		},
		Clipboard: clip,
		Terminal:  &fakeCopier{},
	})

	method, err := s.Share(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, share.MethodClipboard, method)
	assert.False(t, ran)
	assert.Equal(t, []string{text}, clip.copied)
}

func TestShare_TerminalLastResort(t *testing.T) {
	t.Parallel()

	term := &fakeCopier{}
	s := share.New(share.Options{
		Clipboard: &fakeCopier{err: errors.New("no display")},
		Terminal:  term,
	})

	method, err := s.Share(context.Background(), text)
	assert.Equal(t, share.MethodTerminal, method)
	require.ErrorContains(t, err, "no display")
	assert.Equal(t, []string{text}, term.copied)
}

func TestOSC52_Copy(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, share.OSC52{Out: &out}.Copy("bars"))

	assert.Contains(t, out.String(), "\x1b]52;c;")
	assert.Contains(t, out.String(), base64.StdEncoding.EncodeToString([]byte("bars")))

	require.Error(t, share.OSC52{}.Copy("bars"))
}

func TestRunCommand(t *testing.T) {
	t.Parallel()

	require.NoError(t, share.RunCommand(context.Background(), "cat", nil, text))

	err := share.RunCommand(context.Background(), "doba-no-such-share-command", nil, text)
	require.Error(t, err)
}

func TestConsole_WritesLandWhole(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	console := share.NewConsole(f)
	frame := strings.Repeat("#", 32*1024) + "\n"

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			_, _ = console.WriteString(frame)
		})
	}
	wg.Go(func() {
		_ = share.OSC52{Out: console}.Copy("I just scored 9/10")
	})
	wg.Wait()

	got, err := os.ReadFile(f.Name())
	require.NoError(t, err)

	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("I just scored 9/10"))
	idx := strings.Index(string(got), seq)
	require.GreaterOrEqual(t, idx, 0, "clipboard sequence is intact")
	assert.Equal(t, 8, strings.Count(string(got), frame), "every frame is intact")

	rest := strings.ReplaceAll(string(got), frame, "")
	assert.True(t, strings.HasPrefix(rest, seq), "only the sequence is left between frames")
}
