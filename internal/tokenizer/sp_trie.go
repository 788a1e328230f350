package tokenizer

// pieceTrie indexes vocabulary pieces by rune for prefix lookups.
type pieceTrie struct {
	root trieNode
}

type trieNode struct {
	next     map[rune]*trieNode
	terminal bool
	id       int32
	score    float32
}

// add stores piece; a later piece with the same text replaces an earlier one.
func (t *pieceTrie) add(piece string, id int32, score float32) {
	node := &t.root

	for _, r := range piece {
		if node.next == nil {
			node.next = make(map[rune]*trieNode)
		}

		child, ok := node.next[r]
		if !ok {
			child = &trieNode{}
			node.next[r] = child
		}

		node = child
	}

	if node == &t.root {
		return
	}

	node.terminal = true
	node.id = id
	node.score = score
}

// walk calls visit for every stored piece that is a prefix of text, shortest
// first, with the prefix length in runes.
func (t *pieceTrie) walk(text []rune, visit func(length int, id int32, score float32)) {
	node := &t.root

	for i, r := range text {
		child, ok := node.next[r]
		if !ok {
			return
		}

		if child.terminal {
			visit(i+1, child.id, child.score)
		}

		node = child
	}
}

// longest returns the rune length of the longest stored prefix of text, or 0.
func (t *pieceTrie) longest(text []rune) int {
	n := 0
	t.walk(text, func(length int, _ int32, _ float32) { n = length })

	return n
}
