package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"google.golang.org/protobuf/proto"
)

var (
	// ErrEmptyPath is returned when NewSentencePieceTokenizer is called with an empty path.
	ErrEmptyPath = errors.New("tokenizer model path must not be empty")

	// ErrUnsupportedModel is returned for SentencePiece model types other
	// than unigram and BPE.
	ErrUnsupportedModel = errors.New("unsupported sentencepiece model type")
)

// segmenter splits normalized runes into vocabulary spans. Each model type
// has its own.
type segmenter interface {
	segment(text []rune) []spSpan
}

// spSpan is the half-open rune range [start, end) covered by piece id.
type spSpan struct {
	start, end int
	id         int32
}

type spToken struct {
	id   int32
	text string
}

// SentencePieceTokenizer implements Tokenizer for SentencePiece models. The
// segmentation strategy follows the model's trainer spec: unigram models use
// a Viterbi search over piece scores, BPE models merge adjacent symbols by
// score. Normalization follows the model's normalizer spec.
type SentencePieceTokenizer struct {
	seg       segmenter
	norm      spNormalizer
	modelType gosp.TrainerSpec_ModelType
	unknown   int32
	vocabSize int

	// byteIDs maps a byte to its <0xNN> piece. It is nil unless the model
	// was trained with byte fallback.
	byteIDs map[byte]int32
}

// NewSentencePieceTokenizer loads a SentencePiece model from the given path.
func NewSentencePieceTokenizer(modelPath string) (*SentencePieceTokenizer, error) {
	if modelPath == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load sentencepiece model %q: %w", modelPath, err)
	}

	return NewSentencePieceTokenizerFromBytes(data)
}

// NewSentencePieceTokenizerFromBytes loads a SentencePiece model from raw
// protobuf bytes. It never touches the filesystem, so it is the entry point
// for js/wasm builds.
func NewSentencePieceTokenizerFromBytes(data []byte) (*SentencePieceTokenizer, error) {
	if len(data) == 0 {
		return nil, errors.New("tokenizer model data must not be empty")
	}

	var model gosp.ModelProto
	if err := proto.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("unmarshal sentencepiece model: %w", err)
	}

	return newSentencePiece(&model)
}

func newSentencePiece(model *gosp.ModelProto) (*SentencePieceTokenizer, error) {
	trainer := model.GetTrainerSpec()
	pieces := model.GetPieces()

	t := &SentencePieceTokenizer{
		norm:      newSpNormalizer(model.GetNormalizerSpec()),
		modelType: trainer.GetModelType(),
		unknown:   -1,
		vocabSize: len(pieces),
	}

	if trainer.GetByteFallback() {
		t.byteIDs = make(map[byte]int32)
	}

	for i, piece := range pieces {
		switch piece.GetType() {
		case gosp.ModelProto_SentencePiece_UNKNOWN:
			if t.unknown >= 0 {
				return nil, fmt.Errorf("sentencepiece model defines a second unknown piece %q at id %d", piece.GetPiece(), i)
			}
			t.unknown = int32(i)
		case gosp.ModelProto_SentencePiece_BYTE:
			if t.byteIDs == nil {
				return nil, fmt.Errorf("sentencepiece model has byte piece %q but byte fallback is disabled", piece.GetPiece())
			}
			b, err := parseBytePiece(piece.GetPiece())
			if err != nil {
				return nil, err
			}
			t.byteIDs[b] = int32(i)
		}
	}

	if t.unknown < 0 {
		return nil, errors.New("sentencepiece model defines no unknown piece")
	}

	switch t.modelType {
	case gosp.TrainerSpec_UNIGRAM:
		t.seg = newUnigram(pieces, t.unknown)
	case gosp.TrainerSpec_BPE:
		t.seg = newBPE(pieces, t.unknown)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, t.modelType)
	}

	return t, nil
}

// parseBytePiece reads the byte value out of a "<0xNN>" piece.
func parseBytePiece(piece string) (byte, error) {
	if len(piece) != 6 || !strings.HasPrefix(piece, "<0x") || !strings.HasSuffix(piece, ">") {
		return 0, fmt.Errorf("malformed sentencepiece byte piece %q", piece)
	}

	v, err := strconv.ParseUint(piece[3:5], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("malformed sentencepiece byte piece %q: %w", piece, err)
	}

	return byte(v), nil
}

// VocabularySize returns the number of pieces in the model.
func (t *SentencePieceTokenizer) VocabularySize() int {
	return t.vocabSize
}

// ModelType reports the segmentation algorithm, "unigram" or "bpe".
func (t *SentencePieceTokenizer) ModelType() string {
	return strings.ToLower(t.modelType.String())
}

// TextToIDs implements Tokenizer.
func (t *SentencePieceTokenizer) TextToIDs(text string) ([]int, error) {
	tokens, err := t.encode(text)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		ids[i] = int(tok.id)
	}

	return ids, nil
}

// TextToPieces implements Tokenizer. Whitespace and the dummy word-start
// prefix are shown as typed rather than as U+2581. A character spelled out
// through byte fallback appears as one "<0xNN>" piece per byte.
func (t *SentencePieceTokenizer) TextToPieces(text string) ([]string, error) {
	tokens, err := t.encode(text)
	if err != nil {
		return nil, err
	}

	pieces := make([]string, len(tokens))
	for i, tok := range tokens {
		pieces[i] = tok.text
	}

	return pieces, nil
}

func (t *SentencePieceTokenizer) encode(text string) ([]spToken, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	match, display := t.norm.normalize(text)
	if len(match) == 0 {
		return []spToken{}, nil
	}

	spans := t.seg.segment(match)
	tokens := make([]spToken, 0, len(spans))

	for _, s := range spans {
		if s.id == t.unknown && t.byteIDs != nil {
			for _, b := range []byte(string(match[s.start:s.end])) {
				tokens = append(tokens, t.byteToken(b))
			}

			continue
		}

		tokens = append(tokens, spToken{id: s.id, text: string(display[s.start:s.end])})
	}

	return tokens, nil
}

// byteToken falls back to the unknown id when the model lacks a piece for b.
func (t *SentencePieceTokenizer) byteToken(b byte) spToken {
	id, ok := t.byteIDs[b]
	if !ok {
		id = t.unknown
	}

	return spToken{id: id, text: fmt.Sprintf("<0x%02X>", b)}
}
