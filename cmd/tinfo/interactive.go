package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mistwood/term/parm"
	"github.com/mistwood/term/terminfo"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	capStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	templateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const visibleCaps = 18

type modelState int

const (
	stateSelectCap modelState = iota
	stateInputArgs
	stateShowResult
)

type capInfo struct {
	name     string
	template []byte
}

type interactiveModel struct {
	err      error
	termName string
	ti       *terminfo.TermInfo
	vars     *parm.Variables
	caps     []capInfo
	input    textinput.Model
	result   string
	selected int
	offset   int
	state    modelState
}

func newInteractiveModel(termName string) *interactiveModel {
	return &interactiveModel{
		termName: termName,
		vars:     parm.NewVariables(),
	}
}

func runInteractive(termName string) error {
	p := tea.NewProgram(newInteractiveModel(termName))
	_, err := p.Run()
	return err
}

type loadedMsg struct {
	err  error
	ti   *terminfo.TermInfo
	caps []capInfo
}

type expandedMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadEntry
}

func (m *interactiveModel) loadEntry() tea.Msg {
	ti, err := terminfo.FromName(m.termName)
	if err != nil {
		return loadedMsg{err: err}
	}

	caps := make([]capInfo, 0, len(ti.Strings))
	for _, name := range sortedKeys(ti.Strings) {
		caps = append(caps, capInfo{name: name, template: ti.Strings[name]})
	}
	return loadedMsg{ti: ti, caps: caps}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectCap && m.selected > 0 {
				m.selected--
				if m.selected < m.offset {
					m.offset = m.selected
				}
			}

		case "down", "j":
			if m.state == stateSelectCap && m.selected < len(m.caps)-1 {
				m.selected++
				if m.selected >= m.offset+visibleCaps {
					m.offset = m.selected - visibleCaps + 1
				}
			}

		case "enter":
			switch m.state {
			case stateSelectCap:
				m.prepareInput()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.expandCap

			case stateShowResult:
				m.state = stateSelectCap
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectCap
			case stateShowResult:
				m.state = stateSelectCap
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ti = msg.ti
		m.caps = msg.caps

	case expandedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareInput() {
	m.input = textinput.New()
	m.input.Placeholder = "args (comma-separated, e.g. 3,7)"
	m.input.Prompt = "> "
	m.input.Width = 40
	m.input.Focus()
}

func (m *interactiveModel) expandCap() tea.Msg {
	c := m.caps[m.selected]
	out, err := parm.Expand(c.template, parseArgs(m.input.Value()), m.vars)
	if err != nil {
		return expandedMsg{err: err}
	}
	return expandedMsg{result: escape(out)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.ti == nil {
		return "Loading terminfo entry..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("terminfo"))
	b.WriteString(" ")
	b.WriteString(m.ti.Name())
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectCap:
		b.WriteString("Select a string capability to expand:\n\n")
		end := m.offset + visibleCaps
		if end > len(m.caps) {
			end = len(m.caps)
		}
		for i := m.offset; i < end; i++ {
			c := m.caps[i]
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + c.name))
				b.WriteString("   " + templateStyle.Render(escape(c.template)))
			} else {
				b.WriteString(fmt.Sprintf("  %-8s %s", c.name, templateStyle.Render(escape(c.template))))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter expand • q quit"))

	case stateInputArgs:
		c := m.caps[m.selected]
		b.WriteString(fmt.Sprintf("Expanding %s\n", capStyle.Render(c.name)))
		b.WriteString(templateStyle.Render(escape(c.template)))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter expand • esc back"))

	case stateShowResult:
		c := m.caps[m.selected]
		b.WriteString(fmt.Sprintf("Expansion of %s:\n\n", capStyle.Render(c.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}
