// Package viewmode models the two mutually exclusive render modes and the
// radio-style option pair a host surface uses to select between them.
package viewmode

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how tokenizer output is rendered.
type Mode int

const (
	// Pieces renders coloured text pieces. It is the zero value.
	Pieces Mode = iota
	// Identifiers renders the bracketed list of token IDs.
	Identifiers
)

// ErrUnknownMode is returned when a mode name or value is not recognised.
var ErrUnknownMode = errors.New("unknown view mode")

// Source reports the currently selected mode. Reading it has no side effects.
type Source interface {
	CurrentMode() Mode
}

// ParseMode converts a case-insensitive name to a Mode. Accepted names are
// "pieces" or "text" and "ids", "identifiers" or "tokens".
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pieces", "text":
		return Pieces, nil
	case "ids", "identifiers", "tokens":
		return Identifiers, nil
	default:
		return Pieces, fmt.Errorf("%w %q (expected ids|pieces)", ErrUnknownMode, raw)
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == Pieces || m == Identifiers
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == Identifiers {
		return Pieces
	}

	return Identifiers
}

func (m Mode) String() string {
	switch m {
	case Pieces:
		return "pieces"
	case Identifiers:
		return "ids"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownMode, int(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name accepted by ParseMode.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
