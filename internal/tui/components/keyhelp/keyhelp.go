// Package keyhelp renders the "[key] action" hints shown under each stage.
package keyhelp

import (
	"strings"

	"github.com/alkime/doba/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

// Render renders one binding followed by suffix.
func Render(keyBinding key.Binding, suffix ...string) string {
	s := style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)

	s += strings.Join(suffix, "")

	return s
}

// Line renders the enabled bindings separated by spaces and ends with a newline.
func Line(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, Render(b))
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, " ") + "\n"
}
