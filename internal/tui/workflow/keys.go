package workflow

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap holds the bindings every stage shares.
type GlobalKeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultGlobalKeyMap returns the quit bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}
