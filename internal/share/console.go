package share

import (
	"os"
	"sync"
)

// Console is the terminal shared by the TUI renderer and the OSC52 fallback.
// Pass it to tea.WithOutput and to OSC52 so each write lands whole, never in
// the middle of a frame. It still behaves as a terminal file for size and
// raw mode handling.
type Console struct {
	*os.File

	mu sync.Mutex
}

// NewConsole wraps f, usually os.Stdout.
func NewConsole(f *os.File) *Console {
	return &Console{File: f} //nolint:exhaustruct // zero mutex
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.File.Write(p)
}

func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}
