package pager

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Viewport is a full-screen pager running in-process. It talks to the
// controlling terminal directly, since standard input may carry the
// document itself.
type Viewport struct {
	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// Page shows content until the user quits with q, esc or ctrl+c.
func (v *Viewport) Page(ctx context.Context, content []byte) error {
	in, out := v.Input, v.Output
	if in == nil || out == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrStart, Builtin, err)
		}
		defer tty.Close()
		if in == nil {
			in = tty
		}
		if out == nil {
			out = tty
		}
	}

	p := tea.NewProgram(newViewModel(string(content)),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("pager %s: %w", Builtin, err)
	}
	return nil
}

// viewModel is the bubbletea model behind Viewport.
type viewModel struct {
	content string
	vp      viewport.Model
	ready   bool
}

func newViewModel(content string) viewModel {
	return viewModel{content: strings.TrimSuffix(content, "\n")}
}

// Init implements tea.Model
func (m viewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-1, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m viewModel) View() string {
	if !m.ready {
		return ""
	}
	status := statusStyle.Render(fmt.Sprintf("%3.f%%  q to quit", m.vp.ScrollPercent()*100))
	return m.vp.View() + "\n" + status
}
