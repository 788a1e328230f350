// Package tokenizer provides the engines that segment text for the visualizer.
//
// Every engine maps text to token identifiers and to the text pieces those
// identifiers cover. Engines are deterministic, never mutate their input and
// are safe for concurrent use once constructed.
package tokenizer

import "errors"

// ErrInvalidUTF8 is returned by engines that require well-formed UTF-8 input.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Tokenizer segments text into token IDs or into pieces.
type Tokenizer interface {
	// TextToIDs returns the token identifiers for text in order.
	TextToIDs(text string) ([]int, error)
	// TextToPieces returns the pieces covered by each token, left to right.
	TextToPieces(text string) ([]string, error)
}
