package tokenizer

import "unicode/utf8"

// ByteTokenizer emits one token per UTF-8 byte; the ID is the byte value.
// It needs no model, which makes it the offline default.
type ByteTokenizer struct{}

// NewByteTokenizer returns a ByteTokenizer.
func NewByteTokenizer() *ByteTokenizer {
	return &ByteTokenizer{}
}

// TextToIDs implements Tokenizer.
func (ByteTokenizer) TextToIDs(text string) ([]int, error) {
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}

	return ids, nil
}

// TextToPieces implements Tokenizer. Bytes of a multi-byte character become
// separate pieces.
func (ByteTokenizer) TextToPieces(text string) ([]string, error) {
	pieces := make([]string, len(text))
	for i := 0; i < len(text); i++ {
		pieces[i] = text[i : i+1]
	}

	return pieces, nil
}

// RuneTokenizer emits one token per Unicode code point; the ID is the code point.
type RuneTokenizer struct{}

// NewRuneTokenizer returns a RuneTokenizer.
func NewRuneTokenizer() *RuneTokenizer {
	return &RuneTokenizer{}
}

// TextToIDs implements Tokenizer. Malformed UTF-8 yields ErrInvalidUTF8.
func (RuneTokenizer) TextToIDs(text string) ([]int, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	ids := make([]int, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		ids = append(ids, int(r))
	}

	return ids, nil
}

// TextToPieces implements Tokenizer. Malformed UTF-8 yields ErrInvalidUTF8.
func (RuneTokenizer) TextToPieces(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	pieces := make([]string, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		pieces = append(pieces, string(r))
	}

	return pieces, nil
}
