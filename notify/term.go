package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8c8d"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3498db"))
	acceptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71")).Bold(true)
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true)
	errLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true)
)

// Terminal prints messages one per line. Verdict messages of the form
// "<index>-<name>: <VERDICT>" get the verdict coloured green for OK and
// red for anything else.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, now: time.Now}
}

func (t *Terminal) Info(text string) {
	t.write(infoStyle.Render("info")+" ", renderVerdict(text))
}

func (t *Terminal) Error(text string) {
	t.write(errLabelStyle.Render("error"), text)
}

func (t *Terminal) write(label, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ts := timeStyle.Render(t.now().Format(time.TimeOnly))
	fmt.Fprintf(t.out, "%s %s %s\n", ts, label, text)
}

func renderVerdict(text string) string {
	i := strings.LastIndex(text, ": ")
	if i < 0 {
		return text
	}
	verdict := text[i+2:]
	if verdict == "" || strings.ToUpper(verdict) != verdict || strings.Contains(verdict, " ") {
		return text
	}
	style := rejectStyle
	if verdict == "OK" {
		style = acceptStyle
	}
	return text[:i+2] + style.Render(verdict)
}
