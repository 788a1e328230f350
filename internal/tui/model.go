// Package tui is the terminal display surface. A textarea is the input
// surface, tab flips the mode radio, and the rendered output sits below.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/go-tokviz/internal/controller"
	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/tokenizer"
	"github.com/example/go-tokviz/internal/viewmode"
)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger handed to the session controller.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithEngineName sets the engine label shown in the header.
func WithEngineName(name string) Option {
	return func(m *Model) { m.engine = name }
}

// Model is the bubbletea model. It owns one controller session.
type Model struct {
	input   textarea.Model
	session *controller.Session
	log     *slog.Logger
	engine  string

	output render.Output
	status string
	width  int
}

// New builds the model and performs the initial render for mode.
func New(tok tokenizer.Tokenizer, mode viewmode.Mode, opts ...Option) (*Model, error) {
	m := &Model{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.input = textarea.New()
	m.input.Placeholder = "Type text to tokenize..."
	m.input.CharLimit = 0
	m.input.ShowLineNumbers = false
	m.input.SetHeight(5)
	m.input.Focus()

	display := controller.DisplayFunc(func(out render.Output) error {
		m.output = out
		return nil
	})
	m.session = controller.NewSession(tok, mode, display, controller.WithLogger(m.log))

	if err := m.session.Start(); err != nil {
		return nil, fmt.Errorf("initial render: %w", err)
	}

	return m, nil
}

// Run starts the program on the terminal and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()

	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.report(m.session.SelectMode(m.session.Modes.CurrentMode().Other()))
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if text := m.input.Value(); text != m.session.Input.Text() {
		m.report(m.session.SetText(text))
	}

	return m, cmd
}

// report records the outcome of a render cycle in the status line. A failed
// cycle leaves m.output untouched.
func (m *Model) report(err error) {
	if err != nil {
		m.status = "tokenizer error: " + err.Error()
		return
	}

	m.status = ""
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		m.header(),
		m.input.View(),
		"",
		Format(m.output, m.width),
	}

	if m.status != "" {
		sections = append(sections, "", errorStyle.Render(m.status))
	}

	sections = append(sections, "", helpStyle.Render("tab: switch view • esc: quit"))

	return strings.Join(sections, "\n")
}

func (m *Model) header() string {
	title := titleStyle.Render("tokviz")
	if m.engine != "" {
		title += " " + engineStyle.Render(m.engine)
	}

	return title + "  " + radio(m.session.Modes)
}

func radio(r *viewmode.Radio) string {
	option := func(mode viewmode.Mode, label string) string {
		if r.Checked(mode) {
			return selectedStyle.Render("(•) " + label)
		}

		return optionStyle.Render("( ) " + label)
	}

	return option(viewmode.Identifiers, "Show token identifiers") + "  " + option(viewmode.Pieces, "Show pieces")
}

// Output returns the most recently committed render.
func (m *Model) Output() render.Output { return m.output }

// Status returns the current status line, empty after a successful render.
func (m *Model) Status() string { return m.status }

// Mode returns the checked view mode.
func (m *Model) Mode() viewmode.Mode { return m.session.Modes.CurrentMode() }
