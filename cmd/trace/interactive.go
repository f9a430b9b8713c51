package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/dropguard"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// tracked is the demo value the TUI steps through its lifecycle.
// Ordinary cleanup writes 1 into the shared cell, the substituted
// finalizer writes 5, and every step lands in the event log.
type tracked struct {
	cell *int
	note func(string)
}

func (v *tracked) Drop() {
	*v.cell = 1
	v.note("ordinary cleanup ran, cell = 1")
}

func (v *tracked) Finalize() {
	*v.cell = 5
	v.note("substituted finalizer ran, cell = 5")
}

func (v *tracked) Clone() *tracked {
	return &tracked{cell: v.cell, note: v.note}
}

type modelState int

const (
	stateActions modelState = iota
	stateSetCell
)

type action struct {
	name string
	help string
	run  func(*interactiveModel)
}

type interactiveModel struct {
	guards   []*dropguard.Guard[*tracked]
	taken    []*tracked
	events   []string
	input    textinput.Model
	inputErr string
	cell     int
	selected int
	state    modelState
}

func newInteractiveModel() *interactiveModel {
	m := &interactiveModel{}

	ti := textinput.New()
	ti.Placeholder = "integer"
	ti.Prompt = "cell: "
	ti.Width = 20
	m.input = ti

	m.reset()
	return m
}

func (m *interactiveModel) note(s string) {
	m.events = append(m.events, s)
}

func (m *interactiveModel) reset() {
	m.cell = 0
	m.guards = []*dropguard.Guard[*tracked]{dropguard.New(m.newTracked())}
	m.taken = nil
	m.events = nil
	m.selected = 0
	m.note("guard armed over a fresh value")
}

func (m *interactiveModel) newTracked() *tracked {
	return &tracked{cell: &m.cell, note: m.note}
}

func (m *interactiveModel) actions() []action {
	var acts []action

	if len(m.guards) > 0 {
		acts = append(acts,
			action{
				name: "drop guard",
				help: "discharge: run the substituted finalizer",
				run: func(m *interactiveModel) {
					g := m.guards[len(m.guards)-1]
					m.guards = m.guards[:len(m.guards)-1]
					g.Drop()
				},
			},
			action{
				name: "extract value",
				help: "cancel the substitution, take the value back",
				run: func(m *interactiveModel) {
					g := m.guards[len(m.guards)-1]
					m.guards = m.guards[:len(m.guards)-1]
					m.taken = append(m.taken, g.Extract())
					m.note("value extracted, ordinary cleanup is the caller's again")
				},
			},
			action{
				name: "clone guard",
				help: "duplicate the value under an independent obligation",
				run: func(m *interactiveModel) {
					m.guards = append(m.guards, dropguard.Clone(m.guards[len(m.guards)-1]))
					m.note("clone armed, obligations are independent")
				},
			},
		)
	}

	if len(m.taken) > 0 {
		acts = append(acts, action{
			name: "drop extracted",
			help: "run the ordinary cleanup on an extracted value",
			run: func(m *interactiveModel) {
				v := m.taken[len(m.taken)-1]
				m.taken = m.taken[:len(m.taken)-1]
				v.Drop()
			},
		})
	}

	acts = append(acts,
		action{
			name: "set cell",
			help: "overwrite the shared cell",
			run: func(m *interactiveModel) {
				m.state = stateSetCell
				m.input.SetValue("")
				m.inputErr = ""
				m.input.Focus()
			},
		},
		action{
			name: "reset",
			help: "fresh value, fresh guard, empty log",
			run:  func(m *interactiveModel) { m.reset() },
		},
	)

	return acts
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if m.state == stateSetCell {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == stateSetCell {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "enter":
			v, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil {
				m.inputErr = fmt.Sprintf("not an integer: %q", m.input.Value())
				return m, nil
			}
			m.cell = v
			m.note(fmt.Sprintf("cell set to %d", v))
			m.input.Blur()
			m.state = stateActions
			return m, nil

		case "esc":
			m.input.Blur()
			m.state = stateActions
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	acts := m.actions()
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(acts)-1 {
			m.selected++
		}

	case "enter":
		if m.selected < len(acts) {
			acts[m.selected].run(m)
			if remaining := m.actions(); m.selected >= len(remaining) {
				m.selected = len(remaining) - 1
			}
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Guard Tracer"))
	b.WriteString("\n\n")

	b.WriteString("cell = " + valueStyle.Render(strconv.Itoa(m.cell)) + "\n")
	for _, g := range m.guards {
		b.WriteString("armed: " + valueStyle.Render(g.String()) + "\n")
	}
	b.WriteString(fmt.Sprintf("extracted, awaiting ordinary cleanup: %d\n\n", len(m.taken)))

	if m.state == stateSetCell {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.inputErr != "" {
			b.WriteString(errorStyle.Render(m.inputErr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc back"))
		return b.String()
	}

	for i, a := range m.actions() {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + a.name))
		} else {
			b.WriteString("  " + a.name)
		}
		b.WriteString("  " + helpStyle.Render(a.help))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	start := 0
	if len(m.events) > 8 {
		start = len(m.events) - 8
	}
	for _, e := range m.events[start:] {
		b.WriteString(eventStyle.Render("• " + e))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
