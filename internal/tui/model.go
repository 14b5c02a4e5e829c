// Package tui is a full-screen Bubble Tea front end for the assistant.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/assistant/internal/command"
	"github.com/smileynet/assistant/internal/display"
)

// chromeHeight is the number of lines used by the input line and help bar.
const chromeHeight = 2

// Dispatcher evaluates one input line.
type Dispatcher interface {
	Dispatch(line string) command.Result
}

// entry is one submitted line and its result.
type entry struct {
	input  string
	result command.Result
}

// Model is the Bubble Tea model for the interactive assistant.
type Model struct {
	dispatcher Dispatcher
	banner     string
	prompt     string
	entries    []entry
	input      textinput.Model
	viewport   viewport.Model
	help       help.Model
	keys       keyMap
	width      int
	height     int
	done       bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithBanner sets text shown at the top of the transcript.
func WithBanner(text string) ModelOption {
	return func(m *Model) { m.banner = text }
}

// WithPrompt sets the input prompt.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) { m.prompt = prompt }
}

// NewModel creates a Model that sends submitted lines to d.
func NewModel(d Dispatcher, opts ...ModelOption) Model {
	m := Model{
		dispatcher: d,
		prompt:     "Enter a command: ",
		viewport:   viewport.New(0, 0),
		help:       help.New(),
		keys:       defaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	ti := textinput.New()
	ti.Prompt = display.PromptStyle().Render(m.prompt)
	ti.Placeholder = "hello"
	ti.Focus()
	m.input = ti

	m.viewport.SetContent(m.transcript())
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 0)
		m.input.Width = max(msg.Width-len(m.prompt)-1, 0)
		m.viewport.SetContent(m.transcript())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input and records the result.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	res := m.dispatcher.Dispatch(line)
	m.entries = append(m.entries, entry{input: line, result: res})
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()

	if res.Exit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// transcript renders the banner and every entry so far.
func (m Model) transcript() string {
	var b strings.Builder
	styled := display.StyledRenderer{}
	if m.banner != "" {
		b.WriteString(styled.Banner(m.banner))
		b.WriteString("\n")
	}
	for _, e := range m.entries {
		b.WriteString(m.prompt)
		b.WriteString(e.input)
		b.WriteString("\n")
		b.WriteString(styled.Render(e.result))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the transcript, input line and help bar.
func (m Model) View() string {
	if m.done {
		return m.transcript()
	}
	return m.viewport.View() + "\n" + m.input.View() + "\n" + m.help.View(m.keys)
}

// Run starts a full-screen program over d and blocks until it quits.
func Run(ctx context.Context, d Dispatcher, opts ...ModelOption) error {
	p := tea.NewProgram(NewModel(d, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
