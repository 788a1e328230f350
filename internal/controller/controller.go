// Package controller drives render cycles for one interactive session.
//
// A Controller reads the live input text and view mode from its host
// surfaces, renders them and commits the result to a display. It is the only
// component that starts a render cycle. Hosts deliver one event at a time;
// a Controller is not safe for concurrent use.
package controller

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/tokenizer"
	"github.com/example/go-tokviz/internal/viewmode"
)

// Input exposes the current content of the editable text surface.
type Input interface {
	Text() string
}

// Display receives each completed render, replacing whatever it showed before.
type Display interface {
	Commit(out render.Output) error
}

// EventKind identifies what triggered a render cycle.
type EventKind int

const (
	// Startup is the unconditional first render.
	Startup EventKind = iota
	// TextChanged follows an edit of the input surface.
	TextChanged
	// ModeChanged follows a selection change on the mode surface.
	ModeChanged
)

func (k EventKind) String() string {
	switch k {
	case Startup:
		return "startup"
	case TextChanged:
		return "text_changed"
	case ModeChanged:
		return "mode_changed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a change notification from a host surface.
type Event struct {
	Kind EventKind
}

// State is the controller's view state. It mirrors the mode last observed
// on a Startup or ModeChanged event.
type State int

const (
	PiecesView State = iota
	IdentifiersView
)

func (s State) String() string {
	if s == IdentifiersView {
		return "IDENTIFIERS_VIEW"
	}

	return "PIECES_VIEW"
}

func stateFor(m viewmode.Mode) State {
	if m == viewmode.Identifiers {
		return IdentifiersView
	}

	return PiecesView
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for per-render diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller wires input and mode surfaces to the render pipeline.
type Controller struct {
	tok     tokenizer.Tokenizer
	input   Input
	modes   viewmode.Source
	display Display
	log     *slog.Logger

	state   State
	renders int
}

// New returns a Controller. Call Start once the surfaces are ready.
func New(tok tokenizer.Tokenizer, input Input, modes viewmode.Source, display Display, opts ...Option) *Controller {
	c := &Controller{
		tok:     tok,
		input:   input,
		modes:   modes,
		display: display,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = stateFor(modes.CurrentMode())

	return c
}

// Start performs the initial render.
func (c *Controller) Start() error {
	return c.OnChange(Event{Kind: Startup})
}

// OnChange runs one render cycle for ev. On failure nothing is committed,
// so the display keeps its previous output, and the error is returned.
func (c *Controller) OnChange(ev Event) error {
	text := c.input.Text()
	mode := c.modes.CurrentMode()

	if ev.Kind == Startup || ev.Kind == ModeChanged {
		c.state = stateFor(mode)
	}

	start := time.Now()
	out, err := render.Render(text, mode, c.tok)
	elapsed := time.Since(start)

	if err != nil {
		c.log.Debug("render failed",
			slog.String("event", ev.Kind.String()),
			slog.String("mode", mode.String()),
			slog.Int("text_len", len(text)),
			slog.String("error", err.Error()),
		)

		return err
	}

	if err := c.display.Commit(out); err != nil {
		return fmt.Errorf("commit render: %w", err)
	}

	c.renders++
	c.log.Debug("render complete",
		slog.String("event", ev.Kind.String()),
		slog.String("mode", mode.String()),
		slog.Int("text_len", len(text)),
		slog.Int("output_size", out.Size()),
		slog.Int64("elapsed_us", elapsed.Microseconds()),
	)

	return nil
}

// State returns the current view state.
func (c *Controller) State() State {
	return c.state
}

// Renders returns how many render cycles have been committed.
func (c *Controller) Renders() int {
	return c.renders
}
