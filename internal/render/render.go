// Package render turns text into the visual artifact for the selected view
// mode. Render is a pure function of its inputs: the same text, mode and
// tokenizer always produce an identical Output.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/go-tokviz/internal/palette"
	"github.com/example/go-tokviz/internal/tokenizer"
	"github.com/example/go-tokviz/internal/viewmode"
)

// Block is one coloured piece. Text is shown verbatim; surfaces must not
// collapse its whitespace.
type Block struct {
	Text  string      `json:"text"`
	Color palette.HSL `json:"color"`
}

// Output is the complete render of one cycle. Exactly one payload is set:
// Text for viewmode.Identifiers, Blocks for viewmode.Pieces.
type Output struct {
	Mode   viewmode.Mode `json:"mode"`
	Text   string        `json:"text,omitempty"`
	Blocks []Block       `json:"blocks,omitempty"`
}

// Render tokenizes text and formats the result for mode. Tokenizer errors
// are returned wrapped and nothing is rendered.
func Render(text string, mode viewmode.Mode, tok tokenizer.Tokenizer) (Output, error) {
	switch mode {
	case viewmode.Identifiers:
		ids, err := tok.TextToIDs(text)
		if err != nil {
			return Output{}, fmt.Errorf("tokenize to ids: %w", err)
		}

		return Output{Mode: mode, Text: FormatIDs(ids)}, nil
	case viewmode.Pieces:
		pieces, err := tok.TextToPieces(text)
		if err != nil {
			return Output{}, fmt.Errorf("tokenize to pieces: %w", err)
		}

		return Output{Mode: mode, Blocks: Blocks(pieces)}, nil
	default:
		return Output{}, fmt.Errorf("render: %w %d", viewmode.ErrUnknownMode, int(mode))
	}
}

// FormatIDs returns "[" + ids joined by ", " + "]"; no IDs gives "[]".
func FormatIDs(ids []int) string {
	var b strings.Builder

	b.WriteByte('[')

	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(strconv.Itoa(id))
	}

	b.WriteByte(']')

	return b.String()
}

// Blocks pairs every piece with its palette colour, keeping order.
func Blocks(pieces []string) []Block {
	blocks := make([]Block, len(pieces))
	for i, p := range pieces {
		blocks[i] = Block{Text: p, Color: palette.ColorFor(i)}
	}

	return blocks
}

// Size returns the number of rendered units: IDs text bytes or blocks.
func (o Output) Size() int {
	if o.Mode == viewmode.Identifiers {
		return len(o.Text)
	}

	return len(o.Blocks)
}
