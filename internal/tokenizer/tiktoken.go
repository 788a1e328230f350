package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE encoding used when none is configured.
const DefaultEncoding = "cl100k_base"

// TiktokenTokenizer implements Tokenizer with OpenAI BPE encodings.
// The encoding's rank file is fetched on first use and cached under
// TIKTOKEN_CACHE_DIR when that variable is set.
type TiktokenTokenizer struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewTiktokenTokenizer resolves name as a model name first and then as an
// encoding name, e.g. "gpt-4" or "cl100k_base".
func NewTiktokenTokenizer(name string) (*TiktokenTokenizer, error) {
	if name == "" {
		name = DefaultEncoding
	}

	enc, err := tiktoken.EncodingForModel(name)
	if err != nil {
		enc, err = tiktoken.GetEncoding(name)
		if err != nil {
			return nil, fmt.Errorf("load tiktoken encoding %q: %w", name, err)
		}
	}

	return &TiktokenTokenizer{name: name, enc: enc}, nil
}

// Name returns the model or encoding name the tokenizer was built from.
func (t *TiktokenTokenizer) Name() string {
	return t.name
}

// TextToIDs implements Tokenizer. Special-token text is encoded as plain text.
func (t *TiktokenTokenizer) TextToIDs(text string) ([]int, error) {
	if text == "" {
		return []int{}, nil
	}

	return t.enc.Encode(text, nil, nil), nil
}

// TextToPieces implements Tokenizer by decoding each token on its own. A
// token holding part of a multi-byte character decodes to that partial
// byte sequence.
func (t *TiktokenTokenizer) TextToPieces(text string) ([]string, error) {
	ids, err := t.TextToIDs(text)
	if err != nil {
		return nil, err
	}

	pieces := make([]string, len(ids))
	for i, id := range ids {
		pieces[i] = t.enc.Decode([]int{id})
	}

	return pieces, nil
}
