package tokenizer

import (
	"strings"
	"unicode"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"golang.org/x/text/unicode/norm"
)

// spSep is the U+2581 word-start marker SentencePiece vocabularies use in
// place of spaces.
const spSep rune = 0x2581

// spNormalizer applies a model's NormalizerSpec. It produces two parallel
// rune slices: match is what the vocabulary is searched with (whitespace
// escaped to spSep), display is what the user sees (whitespace as typed).
type spNormalizer struct {
	// identity models skip NFKC and control stripping and escape only
	// U+0020.
	identity    bool
	dummyPrefix bool
	removeExtra bool
}

func newSpNormalizer(spec *gosp.NormalizerSpec) spNormalizer {
	return spNormalizer{
		identity:    spec.GetName() == "identity",
		dummyPrefix: spec.GetAddDummyPrefix(),
		removeExtra: spec.GetRemoveExtraWhitespaces(),
	}
}

func (n spNormalizer) isSpace(r rune) bool {
	if n.identity {
		return r == ' '
	}

	return unicode.IsSpace(r)
}

func (n spNormalizer) normalize(text string) (match, display []rune) {
	if !n.identity {
		text = norm.NFKC.String(strings.Map(dropControl, text))
	}

	if n.removeExtra {
		text = collapseSpaces(text, n.isSpace)
	}

	if text == "" {
		return nil, nil
	}

	match = make([]rune, 0, len(text)+1)
	display = make([]rune, 0, len(text)+1)

	if n.dummyPrefix {
		match = append(match, spSep)
		display = append(display, ' ')
	}

	for _, r := range text {
		display = append(display, r)

		if n.isSpace(r) {
			r = spSep
		}

		match = append(match, r)
	}

	return match, display
}

// dropControl removes control, format, private-use and surrogate code points,
// keeping the four whitespace controls that carry layout.
func dropControl(r rune) rune {
	switch r {
	case ' ', '\n', '\r', '\t':
		return r
	}

	if unicode.In(r, unicode.Cc, unicode.Cf, unicode.Co, unicode.Cs) {
		return -1
	}

	return r
}

// collapseSpaces trims leading and trailing whitespace and shrinks each
// interior run to its first character.
func collapseSpaces(text string, isSpace func(rune) bool) string {
	var b strings.Builder

	pending := rune(-1)

	for _, r := range text {
		if isSpace(r) {
			if b.Len() > 0 && pending < 0 {
				pending = r
			}

			continue
		}

		if pending >= 0 {
			b.WriteRune(pending)
			pending = -1
		}

		b.WriteRune(r)
	}

	return b.String()
}
