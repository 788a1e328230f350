package tokenizer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"google.golang.org/protobuf/proto"

	"github.com/example/go-tokviz/internal/config"
	"github.com/example/go-tokviz/internal/testutil"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type testPiece struct {
	text  string
	score float32
	typ   gosp.ModelProto_SentencePiece_Type
}

// tinyModel is a hand-built unigram vocabulary. IDs are the slice indices.
var tinyModel = []testPiece{
	{"<unk>", 0, gosp.ModelProto_SentencePiece_UNKNOWN},  // 0
	{"<s>", 0, gosp.ModelProto_SentencePiece_CONTROL},    // 1
	{"</s>", 0, gosp.ModelProto_SentencePiece_CONTROL},   // 2
	{"▁hello", -1, gosp.ModelProto_SentencePiece_NORMAL}, // 3
	{"▁world", -1, gosp.ModelProto_SentencePiece_NORMAL}, // 4
	{"▁", -2, gosp.ModelProto_SentencePiece_NORMAL},      // 5
	{"h", -5, gosp.ModelProto_SentencePiece_NORMAL},      // 6
	{"e", -5, gosp.ModelProto_SentencePiece_NORMAL},      // 7
	{"l", -5, gosp.ModelProto_SentencePiece_NORMAL},      // 8
	{"o", -5, gosp.ModelProto_SentencePiece_NORMAL},      // 9
	{"w", -5, gosp.ModelProto_SentencePiece_NORMAL},      // 10
	{"r", -5, gosp.ModelProto_SentencePiece_NORMAL},      // 11
	{"d", -5, gosp.ModelProto_SentencePiece_NORMAL},      // 12
}

type modelOption func(*gosp.ModelProto)

func withTrainer(typ gosp.TrainerSpec_ModelType, byteFallback bool) modelOption {
	return func(m *gosp.ModelProto) {
		m.TrainerSpec = &gosp.TrainerSpec{
			ModelType:    typ.Enum(),
			ByteFallback: proto.Bool(byteFallback),
		}
	}
}

func withNormalizer(name string, dummyPrefix, removeExtra bool) modelOption {
	return func(m *gosp.ModelProto) {
		m.NormalizerSpec = &gosp.NormalizerSpec{
			Name:                   proto.String(name),
			AddDummyPrefix:         proto.Bool(dummyPrefix),
			RemoveExtraWhitespaces: proto.Bool(removeExtra),
		}
	}
}

// tinyNormalizer keeps whitespace runs so pieces can be compared to the input.
var tinyNormalizer = withNormalizer("nmt_nfkc", true, false)

func modelBytes(t *testing.T, pieces []testPiece, opts ...modelOption) []byte {
	t.Helper()

	var model gosp.ModelProto
	for _, p := range pieces {
		model.Pieces = append(model.Pieces, &gosp.ModelProto_SentencePiece{
			Piece: proto.String(p.text),
			Score: proto.Float32(p.score),
			Type:  p.typ.Enum(),
		})
	}

	for _, opt := range opts {
		opt(&model)
	}

	data, err := proto.Marshal(&model)
	if err != nil {
		t.Fatalf("marshal model: %v", err)
	}

	return data
}

func newSPTokenizer(t *testing.T, pieces []testPiece, opts ...modelOption) *SentencePieceTokenizer {
	t.Helper()

	tok, err := NewSentencePieceTokenizerFromBytes(modelBytes(t, pieces, opts...))
	if err != nil {
		t.Fatalf("NewSentencePieceTokenizerFromBytes: %v", err)
	}

	return tok
}

func newTinyTokenizer(t *testing.T) *SentencePieceTokenizer {
	t.Helper()

	return newSPTokenizer(t, tinyModel, tinyNormalizer)
}

func encodeBoth(t *testing.T, tok Tokenizer, text string) ([]int, []string) {
	t.Helper()

	ids, err := tok.TextToIDs(text)
	if err != nil {
		t.Fatalf("TextToIDs(%q): %v", text, err)
	}

	pieces, err := tok.TextToPieces(text)
	if err != nil {
		t.Fatalf("TextToPieces(%q): %v", text, err)
	}

	return ids, pieces
}

var (
	_ Tokenizer = (*SentencePieceTokenizer)(nil)
	_ Tokenizer = (*TiktokenTokenizer)(nil)
	_ Tokenizer = (*ByteTokenizer)(nil)
	_ Tokenizer = (*RuneTokenizer)(nil)
)

// ---------------------------------------------------------------------------
// SentencePiece construction
// ---------------------------------------------------------------------------

func TestNewSentencePieceTokenizer_EmptyPath(t *testing.T) {
	_, err := NewSentencePieceTokenizer("")
	if !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got: %v", err)
	}
}

func TestNewSentencePieceTokenizer_MissingFile(t *testing.T) {
	_, err := NewSentencePieceTokenizer("/nonexistent/tokenizer.model")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist for missing model file, got: %v", err)
	}
}

func TestNewSentencePieceTokenizer_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.model")
	if err := os.WriteFile(path, modelBytes(t, tinyModel), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tok, err := NewSentencePieceTokenizer(path)
	if err != nil {
		t.Fatalf("NewSentencePieceTokenizer(%q): %v", path, err)
	}

	if tok.VocabularySize() != len(tinyModel) {
		t.Errorf("VocabularySize() = %d; want %d", tok.VocabularySize(), len(tinyModel))
	}
}

func TestNewSentencePieceTokenizerFromBytes_Empty(t *testing.T) {
	if _, err := NewSentencePieceTokenizerFromBytes(nil); err == nil {
		t.Fatal("expected error for empty model data")
	}
}

func TestNewSentencePieceTokenizerFromBytes_Garbage(t *testing.T) {
	if _, err := NewSentencePieceTokenizerFromBytes([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("expected error for non-protobuf data")
	}
}

func TestNewSentencePieceTokenizerFromBytes_NoUnknownPiece(t *testing.T) {
	_, err := NewSentencePieceTokenizerFromBytes(modelBytes(t, tinyModel[1:]))
	if err == nil {
		t.Fatal("expected error when the model has no unknown piece")
	}
}

// ---------------------------------------------------------------------------
// SentencePiece encoding
// ---------------------------------------------------------------------------

func TestSentencePiece_HelloWorld(t *testing.T) {
	ids, pieces := encodeBoth(t, newTinyTokenizer(t), "hello world")

	if want := []int{3, 4}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{" hello", " world"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}
}

func TestSentencePiece_NewlineKeptInPieces(t *testing.T) {
	tok := newTinyTokenizer(t)

	ids, pieces := encodeBoth(t, tok, "hello\nworld")

	// Newlines match like spaces but are shown as written.
	if want := []int{3, 4}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{" hello", "\nworld"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}

	ids, pieces = encodeBoth(t, tok, "\n")
	if want := []int{5, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids(\\n) = %v; want %v", ids, want)
	}

	if want := []string{" ", "\n"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces(\\n) = %q; want %q", pieces, want)
	}
}

func TestSentencePiece_ConsecutiveUnknownsMerge(t *testing.T) {
	ids, pieces := encodeBoth(t, newTinyTokenizer(t), "hello zq")

	if want := []int{3, 5, 0}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{" hello", " ", "zq"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}
}

func TestSentencePiece_NFKC(t *testing.T) {
	// U+FF48 FULLWIDTH LATIN SMALL LETTER H normalizes to "h".
	ids, pieces := encodeBoth(t, newTinyTokenizer(t), "ｈello")

	if want := []int{3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{" hello"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}
}

func TestSentencePiece_EmptyString(t *testing.T) {
	ids, pieces := encodeBoth(t, newTinyTokenizer(t), "")

	if len(ids) != 0 || len(pieces) != 0 {
		t.Errorf("empty input gave ids=%v pieces=%q; want both empty", ids, pieces)
	}
}

func TestSentencePiece_InvalidUTF8(t *testing.T) {
	tok := newTinyTokenizer(t)

	if _, err := tok.TextToIDs("hello\xff"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("TextToIDs error = %v; want ErrInvalidUTF8", err)
	}

	if _, err := tok.TextToPieces("hello\xff"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("TextToPieces error = %v; want ErrInvalidUTF8", err)
	}
}

func TestSentencePiece_PiecesAlignWithIDs(t *testing.T) {
	tok := newTinyTokenizer(t)

	for _, text := range []string{"hello", "world hello", "  hello", "héllo wörld", "zzz"} {
		ids, pieces := encodeBoth(t, tok, text)
		if len(ids) != len(pieces) {
			t.Errorf("%q: %d ids but %d pieces", text, len(ids), len(pieces))
		}

		// The model prepends one word-start marker; everything else is the input.
		if got := strings.Join(pieces, ""); got != " "+text {
			t.Errorf("%q: joined pieces = %q", text, got)
		}
	}
}

func TestSentencePiece_Deterministic(t *testing.T) {
	tok := newTinyTokenizer(t)

	firstIDs, firstPieces := encodeBoth(t, tok, "hello world hello")
	for range 5 {
		ids, pieces := encodeBoth(t, tok, "hello world hello")
		if !reflect.DeepEqual(ids, firstIDs) || !reflect.DeepEqual(pieces, firstPieces) {
			t.Fatalf("encoding changed between calls: %v %q vs %v %q", firstIDs, firstPieces, ids, pieces)
		}
	}
}

func TestSentencePiece_NoDummyPrefix(t *testing.T) {
	tok := newSPTokenizer(t, tinyModel, withNormalizer("nmt_nfkc", false, false))

	ids, pieces := encodeBoth(t, tok, "hello world")

	// Without the leading marker "▁hello" cannot match the first word.
	if want := []int{6, 7, 8, 8, 9, 4}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{"h", "e", "l", "l", "o", " world"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}
}

func TestSentencePiece_RemovesExtraWhitespace(t *testing.T) {
	tok := newSPTokenizer(t, tinyModel, withNormalizer("nmt_nfkc", true, true))

	ids, pieces := encodeBoth(t, tok, "  hello \t world  ")
	if want := []int{3, 4}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{" hello", " world"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}

	ids, pieces = encodeBoth(t, tok, " \n ")
	if len(ids) != 0 || len(pieces) != 0 {
		t.Errorf("whitespace-only input gave ids=%v pieces=%q; want both empty", ids, pieces)
	}
}

func TestSentencePiece_ModelType(t *testing.T) {
	if got := newTinyTokenizer(t).ModelType(); got != "unigram" {
		t.Errorf("ModelType() = %q; want unigram", got)
	}

	tok := newSPTokenizer(t, bpeModel, withTrainer(gosp.TrainerSpec_BPE, true))
	if got := tok.ModelType(); got != "bpe" {
		t.Errorf("ModelType() = %q; want bpe", got)
	}
}

func TestNewSentencePieceTokenizerFromBytes_UnsupportedModelType(t *testing.T) {
	for _, typ := range []gosp.TrainerSpec_ModelType{gosp.TrainerSpec_WORD, gosp.TrainerSpec_CHAR} {
		_, err := NewSentencePieceTokenizerFromBytes(modelBytes(t, tinyModel, withTrainer(typ, false)))
		if !errors.Is(err, ErrUnsupportedModel) {
			t.Errorf("%s model: error = %v; want ErrUnsupportedModel", typ, err)
		}
	}
}

func TestNewSentencePieceTokenizerFromBytes_BytePieceWithoutFallback(t *testing.T) {
	_, err := NewSentencePieceTokenizerFromBytes(modelBytes(t, bpeModel, withTrainer(gosp.TrainerSpec_BPE, false)))
	if err == nil {
		t.Fatal("expected error for byte pieces in a model without byte fallback")
	}
}

func TestNewSentencePieceTokenizerFromBytes_SecondUnknownPiece(t *testing.T) {
	pieces := append(slices.Clone(tinyModel), testPiece{"<unk2>", 0, gosp.ModelProto_SentencePiece_UNKNOWN})

	if _, err := NewSentencePieceTokenizerFromBytes(modelBytes(t, pieces)); err == nil {
		t.Fatal("expected error when the model defines two unknown pieces")
	}
}

// ---------------------------------------------------------------------------
// SentencePiece BPE
// ---------------------------------------------------------------------------

// bpeModel is a BPE vocabulary with byte fallback for "é" only.
var bpeModel = []testPiece{
	{"<unk>", 0, gosp.ModelProto_SentencePiece_UNKNOWN}, // 0
	{"<0xC3>", 0, gosp.ModelProto_SentencePiece_BYTE},   // 1
	{"<0xA9>", 0, gosp.ModelProto_SentencePiece_BYTE},   // 2
	{"h", -1, gosp.ModelProto_SentencePiece_NORMAL},     // 3
	{"i", -1, gosp.ModelProto_SentencePiece_NORMAL},     // 4
	{"hi", -2, gosp.ModelProto_SentencePiece_NORMAL},    // 5
}

func TestSentencePieceBPE_ByteFallback(t *testing.T) {
	tok := newSPTokenizer(t, bpeModel,
		withTrainer(gosp.TrainerSpec_BPE, true),
		withNormalizer("nmt_nfkc", false, true))

	tests := []struct {
		text   string
		ids    []int
		pieces []string
	}{
		{"hi", []int{5}, []string{"hi"}},
		{"é", []int{1, 2}, []string{"<0xC3>", "<0xA9>"}},
		// U+00FC is 0xC3 0xBC; the model has no piece for 0xBC.
		{"hü", []int{3, 1, 0}, []string{"h", "<0xC3>", "<0xBC>"}},
	}

	for _, tt := range tests {
		ids, pieces := encodeBoth(t, tok, tt.text)
		if !reflect.DeepEqual(ids, tt.ids) {
			t.Errorf("%q: ids = %v; want %v", tt.text, ids, tt.ids)
		}

		if !reflect.DeepEqual(pieces, tt.pieces) {
			t.Errorf("%q: pieces = %q; want %q", tt.text, pieces, tt.pieces)
		}
	}
}

func TestSentencePieceBPE_MergeOrder(t *testing.T) {
	pieces := func(ab, bc float32) []testPiece {
		return []testPiece{
			{"<unk>", 0, gosp.ModelProto_SentencePiece_UNKNOWN},
			{"a", -1, gosp.ModelProto_SentencePiece_NORMAL},
			{"b", -1, gosp.ModelProto_SentencePiece_NORMAL},
			{"c", -1, gosp.ModelProto_SentencePiece_NORMAL},
			{"ab", ab, gosp.ModelProto_SentencePiece_NORMAL},
			{"bc", bc, gosp.ModelProto_SentencePiece_NORMAL},
		}
	}

	tests := []struct {
		name   string
		ab, bc float32
		want   []string
	}{
		{"higher score wins", -1, -0.5, []string{"a", "bc"}},
		{"leftmost wins ties", -1, -1, []string{"ab", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := newSPTokenizer(t, pieces(tt.ab, tt.bc), withTrainer(gosp.TrainerSpec_BPE, false), withNormalizer("identity", false, false))

			_, got := encodeBoth(t, tok, "abc")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pieces = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestSentencePieceBPE_UserDefinedNeverMerged(t *testing.T) {
	pieces := []testPiece{
		{"<unk>", 0, gosp.ModelProto_SentencePiece_UNKNOWN},   // 0
		{"x", -1, gosp.ModelProto_SentencePiece_NORMAL},       // 1
		{"y", -1, gosp.ModelProto_SentencePiece_NORMAL},       // 2
		{"yx", 0, gosp.ModelProto_SentencePiece_NORMAL},       // 3
		{"xy", 0, gosp.ModelProto_SentencePiece_USER_DEFINED}, // 4
	}
	tok := newSPTokenizer(t, pieces, withTrainer(gosp.TrainerSpec_BPE, false), withNormalizer("identity", false, false))

	tests := []struct {
		text string
		ids  []int
	}{
		{"xyx", []int{4, 1}},
		{"yxy", []int{2, 4}},
		{"yx", []int{3}},
	}

	for _, tt := range tests {
		if ids, _ := encodeBoth(t, tok, tt.text); !reflect.DeepEqual(ids, tt.ids) {
			t.Errorf("%q: ids = %v; want %v", tt.text, ids, tt.ids)
		}
	}
}

func TestSentencePieceBPE_WhitespaceAndUnknowns(t *testing.T) {
	pieces := []testPiece{
		{"<unk>", 0, gosp.ModelProto_SentencePiece_UNKNOWN}, // 0
		{"▁", -1, gosp.ModelProto_SentencePiece_NORMAL},     // 1
		{"a", -1, gosp.ModelProto_SentencePiece_NORMAL},     // 2
		{"▁a", 0, gosp.ModelProto_SentencePiece_NORMAL},     // 3
	}
	tok := newSPTokenizer(t, pieces, withTrainer(gosp.TrainerSpec_BPE, false), withNormalizer("identity", true, false))

	ids, got := encodeBoth(t, tok, "a a")
	if want := []int{3, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{" a", " a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("pieces = %q; want %q", got, want)
	}

	// Unknown symbols stay one per character without byte fallback.
	ids, got = encodeBoth(t, tok, "zz")
	if want := []int{1, 0, 0}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{" ", "z", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("pieces = %q; want %q", got, want)
	}
}

// Cross-checks against the upstream encoder on a real model; skipped
// unless models/tokenizer.model is present.
func TestSentencePiece_MatchesUpstreamOnRealModel(t *testing.T) {
	path := testutil.RequireModelFile(t)

	ours, err := NewSentencePieceTokenizer(path)
	if err != nil {
		t.Fatalf("NewSentencePieceTokenizer: %v", err)
	}

	upstream, err := gosp.NewSentencepieceFromFile(path, false)
	if err != nil {
		t.Fatalf("NewSentencepieceFromFile: %v", err)
	}

	if ours.ModelType() != "unigram" {
		t.Skipf("upstream encoder only segments unigram models; this one is %s", ours.ModelType())
	}

	for _, text := range []string{"hello", "Hello world.", "The quick brown fox jumps over the lazy dog."} {
		got, err := ours.TextToIDs(text)
		if err != nil {
			t.Fatalf("TextToIDs(%q): %v", text, err)
		}

		ref := upstream.TokenizeToIDs(text)
		want := make([]int, len(ref))
		for i, id := range ref {
			want[i] = int(id)
		}

		if !reflect.DeepEqual(got, want) {
			t.Errorf("TextToIDs(%q) = %v; upstream %v", text, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Byte and rune engines
// ---------------------------------------------------------------------------

func TestByteTokenizer(t *testing.T) {
	ids, pieces := encodeBoth(t, NewByteTokenizer(), "hé")

	if want := []int{'h', 0xc3, 0xa9}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{"h", "\xc3", "\xa9"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}

	ids, pieces = encodeBoth(t, NewByteTokenizer(), "")
	if len(ids) != 0 || len(pieces) != 0 {
		t.Errorf("empty input gave ids=%v pieces=%q", ids, pieces)
	}
}

func TestRuneTokenizer(t *testing.T) {
	ids, pieces := encodeBoth(t, NewRuneTokenizer(), "hé\n")

	if want := []int{'h', 'é', '\n'}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{"h", "é", "\n"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}

	if _, err := NewRuneTokenizer().TextToIDs("\xff"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("TextToIDs(invalid) error = %v; want ErrInvalidUTF8", err)
	}
}

// ---------------------------------------------------------------------------
// tiktoken (downloads rank files; opt in with TOKVIZ_NETWORK_TESTS=1)
// ---------------------------------------------------------------------------

func TestTiktoken_Hello(t *testing.T) {
	testutil.RequireEnv(t, "TOKVIZ_NETWORK_TESTS")

	tok, err := NewTiktokenTokenizer("cl100k_base")
	if err != nil {
		t.Fatalf("NewTiktokenTokenizer: %v", err)
	}

	ids, pieces := encodeBoth(t, tok, "hello world")
	if want := []int{15339, 1917}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v; want %v", ids, want)
	}

	if want := []string{"hello", " world"}; !reflect.DeepEqual(pieces, want) {
		t.Errorf("pieces = %q; want %q", pieces, want)
	}
}

func TestTiktoken_UnknownEncoding(t *testing.T) {
	if _, err := NewTiktokenTokenizer("no-such-encoding"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_SelectsEngine(t *testing.T) {
	tests := []struct {
		engine string
		want   any
	}{
		{"bytes", &ByteTokenizer{}},
		{"", &ByteTokenizer{}},
		{"runes", &RuneTokenizer{}},
	}

	for _, tt := range tests {
		tok, err := New(config.TokenizerConfig{Engine: tt.engine})
		if err != nil {
			t.Fatalf("New(%q): %v", tt.engine, err)
		}

		if reflect.TypeOf(tok) != reflect.TypeOf(tt.want) {
			t.Errorf("New(%q) = %T; want %T", tt.engine, tok, tt.want)
		}
	}
}

func TestNew_SentencePieceFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.model")
	if err := os.WriteFile(path, modelBytes(t, tinyModel), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tok, err := New(config.TokenizerConfig{Engine: "sp", ModelPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok := tok.(*SentencePieceTokenizer); !ok {
		t.Errorf("New(sp) = %T; want *SentencePieceTokenizer", tok)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(config.TokenizerConfig{Engine: "wordpiece"}); !errors.Is(err, config.ErrUnknownEngine) {
		t.Errorf("New(wordpiece) error = %v; want ErrUnknownEngine", err)
	}

	tok, err := New(config.TokenizerConfig{Engine: "sentencepiece"})
	if !errors.Is(err, ErrEmptyPath) {
		t.Errorf("New(sentencepiece, no path) error = %v; want ErrEmptyPath", err)
	}

	if tok != nil {
		t.Errorf("New returned non-nil tokenizer %T alongside an error", tok)
	}
}
