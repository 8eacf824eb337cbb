// Package bitmap implements a bitmap-indexed trie: every node keeps a bitmap
// of the symbols it has children for and a dense, rank-ordered child array.
//
// The k-th symbol's child sits at position popcount(bitmap & (1<<k - 1)).
//
// The trie is built once from a pointer trie by Compress and has no mutators.
// Nodes are laid out breadth-first in an arena, which makes the children of
// a node contiguous:
//
//	nodes: [ root | children of root | grandchildren ... ]
//	                ^ root.first
package bitmap

import (
	"strings"

	"github.com/aglyzov/go-amt/alphabet"
	"github.com/aglyzov/go-amt/trie"
)

// NodeID is an arena index.
type NodeID uint32

// Root is the ID of the root node.
const Root NodeID = 0

// Node is a read-only view of a trie node.
type Node struct {
	terminal bool
	bitmap   uint32
	first    NodeID // arena index of the rank-0 child
}

// Terminal reports whether a word ends at the node.
func (n Node) Terminal() bool {
	return n.terminal
}

// Bitmap returns the set of child symbols.
func (n Node) Bitmap() uint32 {
	return n.bitmap
}

// Len returns the number of children.
func (n Node) Len() int {
	return alphabet.Count(n.bitmap)
}

// Child returns the child at the given rank.
func (n Node) Child(rank int) NodeID {
	return n.first + NodeID(rank)
}

// Lookup returns the child for a symbol index.
func (n Node) Lookup(idx int) (NodeID, bool) {
	bit := alphabet.Bit(idx)
	if n.bitmap&bit == 0 {
		return 0, false
	}

	return n.Child(alphabet.Rank(n.bitmap, bit)), true
}

// Trie is a bitmap-indexed trie.
type Trie struct {
	nodes []Node
	words int
}

// Compress builds a bitmap trie from a pointer trie.
func Compress(src *trie.Trie) *Trie {
	var (
		nodes = make([]Node, 1, src.Nodes())
		queue = make([]trie.NodeID, 1, src.Nodes())
	)

	nodes[0].terminal = src.Terminal(trie.Root)

	// queue[i] is the pointer node that became nodes[i]
	for i := 0; i < len(queue); i++ {
		nodes[i].first = NodeID(len(nodes))

		for idx := 0; idx < alphabet.Size; idx++ {
			child, ok := src.Child(queue[i], idx)
			if !ok {
				continue
			}

			nodes[i].bitmap |= alphabet.Bit(idx)
			nodes = append(nodes, Node{terminal: src.Terminal(child)})
			queue = append(queue, child)
		}
	}

	return &Trie{
		nodes: nodes,
		words: src.Len(),
	}
}

// Len returns the number of words.
func (t *Trie) Len() int {
	return t.words
}

// Nodes returns the number of nodes including the root.
func (t *Trie) Nodes() int {
	return len(t.nodes)
}

// Root returns the root node.
func (t *Trie) Root() Node {
	return t.nodes[Root]
}

// Node returns a node by ID.
func (t *Trie) Node(id NodeID) Node {
	return t.nodes[id]
}

// Contains reports whether the word is in the trie.
func (t *Trie) Contains(word string) bool {
	if word == "" {
		return false
	}

	cur := t.nodes[Root]

	for i := 0; i < len(word); i++ {
		idx, ok := alphabet.Index(word[i])
		if !ok {
			return false
		}

		var (
			bit    = alphabet.Bit(idx)
			bitmap = cur.bitmap
		)

		if bitmap&bit == 0 {
			return false // the node doesn't have the symbol
		}

		cur = t.nodes[cur.first+NodeID(alphabet.Rank(bitmap, bit))]
	}

	return cur.terminal
}

// Iter calls the handler for every word in lexicographic order.
// The handler can continue the process by returning true or abort with false.
// It returns whether all words were visited.
func (t *Trie) Iter(handler func(word string) bool) bool {
	return t.iterate(t.nodes[Root], make([]byte, 0, 32), handler)
}

func (t *Trie) iterate(n Node, buf []byte, h func(string) bool) bool {
	rank := 0

	for idx := 0; idx < alphabet.Size; idx++ {
		if n.bitmap&alphabet.Bit(idx) == 0 {
			continue
		}

		var (
			child = t.nodes[n.Child(rank)]
			word  = append(buf, alphabet.Symbol(idx))
		)

		rank++

		if child.terminal && !h(string(word)) {
			return false
		}

		if !t.iterate(child, word, h) {
			return false
		}
	}

	return true
}

// Keys returns all words in lexicographic order.
func (t *Trie) Keys() []string {
	keys := make([]string, 0, t.words)

	t.Iter(func(word string) bool {
		keys = append(keys, word)
		return true
	})

	return keys
}

// Outline returns a preorder trace of the trie, see trie.Trie.Outline.
func (t *Trie) Outline() string {
	var b strings.Builder

	t.outline(t.nodes[Root], &b)

	return b.String()
}

func (t *Trie) outline(n Node, b *strings.Builder) {
	rank := 0

	for idx := 0; idx < alphabet.Size; idx++ {
		if n.bitmap&alphabet.Bit(idx) == 0 {
			continue
		}

		child := t.nodes[n.Child(rank)]
		rank++

		b.WriteByte(alphabet.Symbol(idx))
		if child.terminal {
			b.WriteByte('\'')
		}

		t.outline(child, b)
	}
}
