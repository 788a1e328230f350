package tokenizer

import (
	"math"
	"slices"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
)

// unigram picks the segmentation with the highest total piece score.
type unigram struct {
	vocab   pieceTrie
	unknown int32
}

func newUnigram(pieces []*gosp.ModelProto_SentencePiece, unknown int32) *unigram {
	u := &unigram{unknown: unknown}

	for i, p := range pieces {
		switch p.GetType() {
		case gosp.ModelProto_SentencePiece_NORMAL, gosp.ModelProto_SentencePiece_USER_DEFINED:
			u.vocab.add(p.GetPiece(), int32(i), p.GetScore())
		}
	}

	return u
}

func (u *unigram) segment(text []rune) []spSpan {
	// best[i] is the top score of any segmentation of text[:i]; last[i] is
	// the final span of that segmentation.
	best := make([]float32, len(text)+1)
	last := make([]spSpan, len(text)+1)

	for i := 1; i < len(best); i++ {
		best[i] = -math.MaxFloat32
	}

	for i := range text {
		u.vocab.walk(text[i:], func(n int, id int32, score float32) {
			if s := best[i] + score; s > best[i+n] {
				best[i+n] = s
				last[i+n] = spSpan{start: i, end: i + n, id: id}
			}
		})

		// Nothing in the vocabulary reaches i+1: step over text[i] as an
		// unknown at no cost.
		if best[i+1] == -math.MaxFloat32 {
			best[i+1] = 0
			last[i+1] = spSpan{start: i, end: i + 1, id: u.unknown}
		}
	}

	var spans []spSpan
	for end := len(text); end > 0; end = last[end].start {
		s := last[end]

		if k := len(spans) - 1; k >= 0 && s.id == u.unknown && spans[k].id == u.unknown {
			spans[k].start = s.start
			continue
		}

		spans = append(spans, s)
	}

	slices.Reverse(spans)

	return spans
}
