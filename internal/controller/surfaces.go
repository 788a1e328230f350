package controller

import (
	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/tokenizer"
	"github.com/example/go-tokviz/internal/viewmode"
)

// TextBuffer is an Input backed by a plain string. Hosts without their own
// text widget store the latest edit here.
type TextBuffer struct {
	text string
}

// Text implements Input.
func (b *TextBuffer) Text() string { return b.text }

// Set replaces the buffer content.
func (b *TextBuffer) Set(text string) { b.text = text }

// DisplayFunc adapts a function to Display.
type DisplayFunc func(out render.Output) error

// Commit implements Display.
func (f DisplayFunc) Commit(out render.Output) error { return f(out) }

// Session bundles a text buffer and a radio pair with the Controller that
// watches them. Edits go through SetText and SelectMode so every change
// triggers exactly one render cycle.
type Session struct {
	Input *TextBuffer
	Modes *viewmode.Radio
	*Controller
}

// NewSession returns a Session starting with empty text and initial checked.
// Start must be called before the first edit.
func NewSession(tok tokenizer.Tokenizer, initial viewmode.Mode, display Display, opts ...Option) *Session {
	s := &Session{
		Input: &TextBuffer{},
		Modes: viewmode.NewRadio(initial),
	}
	s.Controller = New(tok, s.Input, s.Modes, display, opts...)

	return s
}

// SetText stores text and re-renders.
func (s *Session) SetText(text string) error {
	s.Input.Set(text)
	return s.OnChange(Event{Kind: TextChanged})
}

// SelectMode checks the option for m and re-renders. Selecting the option
// that is already checked still re-renders.
func (s *Session) SelectMode(m viewmode.Mode) error {
	s.Modes.Select(m)
	return s.OnChange(Event{Kind: ModeChanged})
}
