// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/cathy-go/internal/command"
	"github.com/nibzard/cathy-go/internal/loop"
	"github.com/nibzard/cathy-go/internal/parser"
)

// ErrNotTTY is returned by RunTUI when stdout is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			PaddingLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// footerHeight is the number of lines below the viewport: input and help.
const footerHeight = 3

// RunTUI runs an interactive session on l until the user leaves or ctx ends.
func RunTUI(ctx context.Context, l *loop.Loop) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	program := tea.NewProgram(newTUIModel(l), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	loop       *loop.Loop
	input      textinput.Model
	viewport   viewport.Model
	ready      bool
	transcript []string
}

func newTUIModel(l *loop.Loop) *tuiModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "todo buy milk"
	ti.CharLimit = 512
	ti.ShowSuggestions = true
	ti.SetSuggestions(parser.Keywords)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	ti.Focus()

	return &tuiModel{
		loop:  l,
		input: ti,
		transcript: []string{
			bannerStyle.Render(command.Logo),
			replyStyle.Render(command.Welcome()),
		},
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		m.syncViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			if m.submit(line) {
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if _, isKey := msg.(tea.KeyMsg); !isKey && m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// submit runs line through the loop and records the exchange. It reports
// whether the session is over.
func (m *tuiModel) submit(line string) bool {
	reply := m.loop.Respond(line)
	m.transcript = append(m.transcript, echoStyle.Render("> "+line))
	if reply.Err != nil {
		m.transcript = append(m.transcript, errorStyle.Render(reply.String()))
	} else {
		m.transcript = append(m.transcript, replyStyle.Render(reply.Text))
	}
	m.syncViewport()
	return reply.Exit
}

func (m *tuiModel) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
	m.viewport.GotoBottom()
}

func (m *tuiModel) content() string {
	return strings.Join(m.transcript, "\n\n")
}

func (m *tuiModel) View() string {
	if !m.ready {
		return m.content() + "\n\n" + m.input.View()
	}
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: run • tab: complete • pgup/pgdn: scroll • esc: quit"))
	return b.String()
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
