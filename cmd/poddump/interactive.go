package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/decoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	podStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
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

type modelState int

const (
	stateSelectPod modelState = iota
	stateShowPod
	stateHexInput
)

type interactiveModel struct {
	err      error
	filename string
	pods     []*podwire.Value
	detail   string
	hexInput textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "04 00 00 00 04 00 00 00 2a 00 00 00 00 00 00 00"
	ti.Prompt = "hex: "
	ti.Width = 60
	return &interactiveModel{
		filename: filename,
		hexInput: ti,
		state:    stateSelectPod,
	}
}

type loadedMsg struct {
	err  error
	pods []*podwire.Value
}

type decodedMsg struct {
	err    error
	detail string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *interactiveModel) loadFile() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	pods, err := decoder.DecodeAll(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{pods: pods}
}

func (m *interactiveModel) decodeHexInput() tea.Msg {
	data, err := decodeHex([]byte(m.hexInput.Value()))
	if err != nil {
		return decodedMsg{err: err}
	}
	v, err := decoder.Decode(data)
	if err != nil {
		return decodedMsg{err: err}
	}
	return decodedMsg{detail: decoder.Sprint(v)}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateHexInput {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectPod && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectPod && m.selected < len(m.pods)-1 {
				m.selected++
			}

		case "h":
			if m.state == stateSelectPod {
				m.state = stateHexInput
				m.hexInput.SetValue("")
				m.hexInput.Focus()
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelectPod:
				if len(m.pods) > 0 {
					m.detail = decoder.Sprint(m.pods[m.selected])
					m.state = stateShowPod
				}
			case stateHexInput:
				m.hexInput.Blur()
				return m, m.decodeHexInput
			case stateShowPod:
				m.state = stateSelectPod
				m.detail = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateHexInput:
				m.state = stateSelectPod
				m.hexInput.Blur()
			case stateShowPod:
				m.state = stateSelectPod
				m.detail = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.pods = msg.pods

	case decodedMsg:
		m.detail = msg.detail
		m.err = msg.err
		m.state = stateShowPod
	}

	if m.state == stateHexInput {
		var cmd tea.Cmd
		m.hexInput, cmd = m.hexInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowPod {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("POD Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectPod:
		if len(m.pods) == 0 {
			b.WriteString("Loading...")
			break
		}
		b.WriteString("Select a pod to inspect:\n\n")
		for i, v := range m.pods {
			cursor := "  "
			line := m.formatPod(i, v)
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + line))
			} else {
				b.WriteString(cursor + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • h decode hex • q quit"))

	case stateHexInput:
		b.WriteString("Decode a pod from hex bytes:\n\n")
		b.WriteString(m.hexInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowPod:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.detail))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatPod(i int, v *podwire.Value) string {
	label := typeStyle.Render(v.Type().String())
	switch v.Type() {
	case podwire.TypeStruct:
		return fmt.Sprintf("%d: %s (%d fields)", i, label, v.Len())
	case podwire.TypeArray:
		elem, _ := v.ElemType()
		return fmt.Sprintf("%d: %s of %s (%d elements)", i, label, typeStyle.Render(elem.String()), v.Len())
	default:
		line := strings.TrimRight(decoder.Sprint(v), "\n")
		return fmt.Sprintf("%d: %s", i, podStyle.Render(line))
	}
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
