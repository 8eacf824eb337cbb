// Package trie implements a plain pointer trie over the fixed alphabet.
//
// Nodes live in an arena; a child link is the arena index of the child, with
// zero meaning "no child" (the root is node 0 and is never anyone's child).
// The trie is append-only: words can be inserted but never removed.
package trie

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aglyzov/go-amt/alphabet"
)

var ErrEmptyWord = errors.New("trie: empty word")

// NodeID is an arena index.
type NodeID uint32

// Root is the ID of the root node.
const Root NodeID = 0

type node struct {
	terminal bool
	children [alphabet.Size]NodeID
}

// Trie is a pointer trie.
type Trie struct {
	nodes []node
	words int
}

// New returns a trie initialized with the given words.
func New(words ...string) (*Trie, error) {
	t := &Trie{
		nodes: make([]node, 1),
	}

	for _, word := range words {
		if err := t.Insert(word); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.words
}

// Nodes returns the number of nodes including the root.
func (t *Trie) Nodes() int {
	return len(t.nodes)
}

// Insert adds a word. Inserting a word twice is a no-op.
//
// The word is checked before the trie is touched so a failed insert leaves
// it unchanged.
func (t *Trie) Insert(word string) error {
	if word == "" {
		return ErrEmptyWord
	}

	if err := alphabet.Valid(word); err != nil {
		return fmt.Errorf("trie: insert: %w", err)
	}

	cur := Root

	for i := 0; i < len(word); i++ {
		idx, _ := alphabet.Index(word[i])

		next := t.nodes[cur].children[idx]
		if next == 0 {
			next = NodeID(len(t.nodes))
			t.nodes = append(t.nodes, node{})
			t.nodes[cur].children[idx] = next
		}

		cur = next
	}

	if !t.nodes[cur].terminal {
		t.nodes[cur].terminal = true
		t.words++
	}

	return nil
}

// Contains reports whether the word was inserted.
func (t *Trie) Contains(word string) bool {
	cur := Root

	for i := 0; i < len(word); i++ {
		idx, ok := alphabet.Index(word[i])
		if !ok {
			return false
		}

		if cur = t.nodes[cur].children[idx]; cur == 0 {
			return false
		}
	}

	return t.nodes[cur].terminal
}

// Terminal reports whether a word ends at the node.
func (t *Trie) Terminal(id NodeID) bool {
	return t.nodes[id].terminal
}

// Child returns the child of a node for the given symbol index.
func (t *Trie) Child(id NodeID, idx int) (NodeID, bool) {
	child := t.nodes[id].children[idx]

	return child, child != 0
}

// Iter calls the handler for every word in lexicographic order.
// The handler can continue the process by returning true or abort with false.
// It returns whether all words were visited.
func (t *Trie) Iter(handler func(word string) bool) bool {
	buf := make([]byte, 0, 32)

	return t.iterate(Root, buf, handler)
}

func (t *Trie) iterate(id NodeID, buf []byte, h func(string) bool) bool {
	for idx, child := range t.nodes[id].children {
		if child == 0 {
			continue
		}

		word := append(buf, alphabet.Symbol(idx))

		if t.nodes[child].terminal && !h(string(word)) {
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

// Outline returns a preorder trace of the trie: every edge prints its symbol
// followed by a quote when a word ends there.
//
// The same dictionary produces the same outline in every representation.
func (t *Trie) Outline() string {
	var b strings.Builder

	t.outline(Root, &b)

	return b.String()
}

func (t *Trie) outline(id NodeID, b *strings.Builder) {
	for idx, child := range t.nodes[id].children {
		if child == 0 {
			continue
		}

		b.WriteByte(alphabet.Symbol(idx))
		if t.nodes[child].terminal {
			b.WriteByte('\'')
		}

		t.outline(child, b)
	}
}
