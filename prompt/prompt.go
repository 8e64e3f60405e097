package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompter asks the user for a single line of text. ok is false when
// the user cancelled.
type Prompter interface {
	Prompt(ctx context.Context, message string) (answer string, ok bool, err error)
}

// Terminal runs a small bubbletea program with one text input. Losing
// terminal focus does not close it; only Enter, Esc or Ctrl+C do.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) Prompt(ctx context.Context, message string) (string, bool, error) {
	p := tea.NewProgram(newModel(message),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithReportFocus(),
	)
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(model)
	if !ok {
		return "", false, fmt.Errorf("unexpected prompt model %T", final)
	}
	if !m.submitted {
		return "", false, nil
	}
	return strings.TrimSpace(m.input.Value()), true, nil
}

type model struct {
	message   string
	input     textinput.Model
	submitted bool
	done      bool
}

func newModel(message string) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 24
	ti.Placeholder = "handle"

	return model{
		message: message,
		input:   ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.FocusMsg, tea.BlurMsg:
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submitted = true
			m.done = true
			m.input.Blur()
			return m, tea.Quit
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done {
		return ""
	}
	v := lipgloss.NewStyle().Foreground(lipgloss.Color("#e056fd"))
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8c8d"))

	return fmt.Sprintf("%s\n%s\n%s\n",
		m.message,
		v.Render(m.input.View()),
		h.Render("enter to confirm, esc to cancel"),
	)
}
