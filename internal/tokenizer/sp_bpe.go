package tokenizer

import (
	"container/heap"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
)

// bpe repeatedly merges the adjacent pair whose concatenation is the
// best-scoring vocabulary piece. User-defined pieces are matched up front and
// never merged further.
type bpe struct {
	mergeable   map[string]int32
	reserved    map[string]int32
	scores      []float32
	userDefined pieceTrie
	unknown     int32
}

func newBPE(pieces []*gosp.ModelProto_SentencePiece, unknown int32) *bpe {
	b := &bpe{
		mergeable: make(map[string]int32),
		reserved:  make(map[string]int32),
		scores:    make([]float32, len(pieces)),
		unknown:   unknown,
	}

	for i, p := range pieces {
		id := int32(i)
		b.scores[i] = p.GetScore()

		switch p.GetType() {
		case gosp.ModelProto_SentencePiece_USER_DEFINED:
			b.userDefined.add(p.GetPiece(), id, p.GetScore())
			b.mergeable[p.GetPiece()] = id
		case gosp.ModelProto_SentencePiece_NORMAL, gosp.ModelProto_SentencePiece_UNUSED:
			b.mergeable[p.GetPiece()] = id
		default:
			b.reserved[p.GetPiece()] = id
		}
	}

	return b
}

// bpeSymbol is a node of the doubly linked list of current symbols. Indices
// are into the symbol slice; -1 marks either end.
type bpeSymbol struct {
	start, end int
	prev, next int
	fixed      bool
	merged     bool
}

type bpeCandidate struct {
	left, right int
	size        int
	score       float32
}

// bpeQueue pops the highest score first, leftmost on ties.
type bpeQueue []bpeCandidate

func (q bpeQueue) Len() int { return len(q) }

func (q bpeQueue) Less(i, j int) bool {
	if q[i].score != q[j].score {
		return q[i].score > q[j].score
	}

	return q[i].left < q[j].left
}

func (q bpeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *bpeQueue) Push(x any) { *q = append(*q, x.(bpeCandidate)) }

func (q *bpeQueue) Pop() any {
	old := *q
	c := old[len(old)-1]
	*q = old[:len(old)-1]

	return c
}

func (b *bpe) segment(text []rune) []spSpan {
	syms := make([]bpeSymbol, 0, len(text))

	for i := 0; i < len(text); {
		n, fixed := b.userDefined.longest(text[i:]), true
		if n == 0 {
			n, fixed = 1, false
		}

		syms = append(syms, bpeSymbol{start: i, end: i + n, prev: len(syms) - 1, next: len(syms) + 1, fixed: fixed})
		i += n
	}

	syms[len(syms)-1].next = -1

	queue := &bpeQueue{}

	suggest := func(l, r int) {
		if l < 0 || r < 0 || syms[l].fixed || syms[r].fixed {
			return
		}

		id, ok := b.mergeable[string(text[syms[l].start:syms[r].end])]
		if !ok {
			return
		}

		heap.Push(queue, bpeCandidate{left: l, right: r, size: syms[r].end - syms[l].start, score: b.scores[id]})
	}

	for i := 1; i < len(syms); i++ {
		suggest(i-1, i)
	}

	for queue.Len() > 0 {
		c := heap.Pop(queue).(bpeCandidate)
		left, right := &syms[c.left], &syms[c.right]

		// Skip candidates made stale by an earlier merge on either side.
		if left.merged || right.merged || left.next != c.right || right.end-left.start != c.size {
			continue
		}

		left.end = right.end
		left.next = right.next
		if right.next >= 0 {
			syms[right.next].prev = c.left
		}
		right.merged = true

		suggest(left.prev, c.left)
		suggest(c.left, left.next)
	}

	var spans []spSpan
	for i := 0; i >= 0; i = syms[i].next {
		s := syms[i]
		spans = append(spans, spSpan{start: s.start, end: s.end, id: b.lookup(string(text[s.start:s.end]))})
	}

	return spans
}

func (b *bpe) lookup(symbol string) int32 {
	if id, ok := b.reserved[symbol]; ok {
		return id
	}

	if id, ok := b.mergeable[symbol]; ok {
		return id
	}

	return b.unknown
}
