package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/synapsehq/extension-host/extension"
	"github.com/synapsehq/extension-host/loader"
	"github.com/synapsehq/extension-host/registry"
)

var (
	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	constStyle = lipgloss.NewStyle().
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

type interactiveModel struct {
	err          error
	eng          *extension.Engine
	ext          *extension.Extension
	wasmFile     string
	manifestFile string
	result       string
	symbols      []symbolInfo
	inputs       []textinput.Model
	selected     int
	focusIdx     int
	state        modelState
}

type symbolInfo struct {
	label string
	value any
	fn    *extension.Func
}

type modelState int

const (
	stateSelectSymbol modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(wasmFile, manifestFile string) *interactiveModel {
	return &interactiveModel{
		wasmFile:     wasmFile,
		manifestFile: manifestFile,
		state:        stateSelectSymbol,
	}
}

type loadedMsg struct {
	err     error
	eng     *extension.Engine
	ext     *extension.Extension
	symbols []symbolInfo
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadExtension
}

func (m *interactiveModel) loadExtension() tea.Msg {
	ctx := context.Background()

	eng, err := extension.NewEngine(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}

	ext, err := loadExtension(ctx, eng, m.wasmFile, m.manifestFile)
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	reg := registry.New(registry.DefaultOptions())
	ld := loader.New(reg, loader.NewHookSet(), loader.DefaultOptions())
	if _, err := ld.Bootstrap(ext); err != nil {
		ext.Close(ctx)
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	var symbols []symbolInfo
	collect := func(prefix string, ns interface {
		Public() []string
		Lookup(string) (any, bool)
	}) {
		for _, name := range ns.Public() {
			v, _ := ns.Lookup(name)
			si := symbolInfo{label: prefix + name, value: v}
			if fn, ok := v.(*extension.Func); ok {
				si.fn = fn
			}
			symbols = append(symbols, si)
		}
	}
	collect("", ext.Root())
	for _, ns := range ext.Namespaces() {
		collect(ns.Name()+".", ns)
	}

	return loadedMsg{symbols: symbols, eng: eng, ext: ext}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			ctx := context.Background()
			if m.ext != nil {
				m.ext.Close(ctx)
			}
			if m.eng != nil {
				m.eng.Close(ctx)
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectSymbol && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectSymbol && m.selected < len(m.symbols)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectSymbol:
				if len(m.symbols) == 0 {
					return m, nil
				}
				s := m.symbols[m.selected]
				if s.fn == nil {
					m.result = fmt.Sprintf("%v", s.value)
					m.state = stateShowResult
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callSymbol
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callSymbol

			case stateShowResult:
				m.state = stateSelectSymbol
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectSymbol
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectSymbol
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.symbols = msg.symbols
		m.eng = msg.eng
		m.ext = msg.ext

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	params, _ := m.symbols[m.selected].fn.Arity()
	m.inputs = make([]textinput.Model, params)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = "u64"
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callSymbol() tea.Msg {
	ctx := context.Background()

	s := m.symbols[m.selected]
	args := make([]uint64, len(m.inputs))
	for i, input := range m.inputs {
		v, err := strconv.ParseUint(strings.TrimSpace(input.Value()), 10, 64)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("arg%d: %w", i, err)}
		}
		args[i] = v
	}

	results, err := s.fn.Call(ctx, args...)
	if err != nil {
		return callResultMsg{err: err}
	}

	return callResultMsg{result: fmt.Sprintf("%v", results)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.symbols) == 0 {
		return "Loading extension..."
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Extension Inspector"))
	b.WriteString(" ")
	b.WriteString(m.ext.Name())
	b.WriteString(" ")
	b.WriteString(m.ext.Version())
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectSymbol:
		b.WriteString("Select a symbol:\n\n")
		for i, s := range m.symbols {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatSymbol(s)))
			} else {
				b.WriteString(cursor + m.formatSymbol(s))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call/show • q quit"))

	case stateInputArgs:
		s := m.symbols[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(s.label)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		s := m.symbols[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(s.label)))
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

func (m *interactiveModel) formatSymbol(s symbolInfo) string {
	if s.fn != nil {
		params, results := s.fn.Arity()
		sig := fmt.Sprintf("(%s)", strings.TrimSuffix(strings.Repeat("u64, ", params), ", "))
		if results > 0 {
			sig += " -> u64"
		}
		return funcStyle.Render(s.label) + sig
	}
	return constStyle.Render(s.label) + helpStyle.Render(fmt.Sprintf(" = %v", s.value))
}

func runInteractive(wasmFile, manifestFile string) error {
	p := tea.NewProgram(newInteractiveModel(wasmFile, manifestFile), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
