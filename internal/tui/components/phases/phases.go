// Package phases holds the one active stage model and swaps it out on
// transitions, tearing the old one down first.
package phases

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Teardowner is implemented by phases that hold resources or timers.
// Teardown is called exactly once, when the phase is replaced.
type Teardowner interface {
	Teardown()
}

// Builder creates a phase model. gen is unique per activation and lets the
// model recognize its own delayed messages.
type Builder func(gen int) tea.Model

type Phase struct {
	Name string
	Gen  int
	mdl  tea.Model
}

func (p Phase) Init() tea.Cmd {
	return p.mdl.Init()
}

func (p Phase) Update(msg tea.Msg) (Phase, tea.Cmd) {
	updatedMdl, cmd := p.mdl.Update(msg)
	p.mdl = updatedMdl
	return p, cmd
}

func (p Phase) View() string {
	return p.mdl.View()
}

// Model returns the phase's current model.
func (p Phase) Model() tea.Model {
	return p.mdl
}

type Model struct {
	curr Phase
	gen  int
}

// New starts with a first phase.
func New(name string, build Builder) Model {
	m := Model{} //nolint:exhaustruct // set below
	m.gen++
	m.curr = Phase{Name: name, Gen: m.gen, mdl: build(m.gen)}

	return m
}

func (m Model) Init() tea.Cmd {
	return m.curr.Init()
}

// Swap tears down the active phase and starts a new one.
func (m Model) Swap(name string, build Builder) (Model, tea.Cmd) {
	if td, ok := m.curr.mdl.(Teardowner); ok {
		td.Teardown()
	}

	m.gen++
	m.curr = Phase{Name: name, Gen: m.gen, mdl: build(m.gen)}

	return m, m.curr.Init()
}

func (m Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	ph, cmd := m.curr.Update(teaMsg)
	m.curr = ph

	return m, cmd
}

func (m Model) View() string {
	return m.curr.View()
}

// Current returns the active phase.
func (m Model) Current() Phase {
	return m.curr
}

// CurrentPhaseName returns the name of the current phase.
func (m Model) CurrentPhaseName() string {
	return m.curr.Name
}

// Teardown tears down the active phase without replacing it, e.g. on quit.
func (m Model) Teardown() {
	if td, ok := m.curr.mdl.(Teardowner); ok {
		td.Teardown()
	}
}
