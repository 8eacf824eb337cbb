package trie

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aglyzov/go-amt/alphabet"
)

const (
	sexprTerm  = '\''
	sexprClose = ')'
)

var ErrBadSExpr = errors.New("trie: malformed s-expression")

// SExpr serializes the trie into a compact S-expression:
//
//	<symbol> [<'>] <subtree> <)>
//
// A quote marks a terminal symbol and every subtree is closed with a
// parenthesis, e.g. {"ab", "b"} becomes "ab'))b')".
func (t *Trie) SExpr() string {
	var b strings.Builder

	t.sexpr(Root, &b)

	return b.String()
}

func (t *Trie) sexpr(id NodeID, b *strings.Builder) {
	for idx, child := range t.nodes[id].children {
		if child == 0 {
			continue
		}

		b.WriteByte(alphabet.Symbol(idx))
		if t.nodes[child].terminal {
			b.WriteByte(sexprTerm)
		}

		t.sexpr(child, b)
		b.WriteByte(sexprClose)
	}
}

// ParseSExpr reconstructs the word list from an S-expression produced by
// SExpr. Words come out in the order they appear in the expression.
func ParseSExpr(expr string) ([]string, error) {
	var (
		words []string
		path  = make([]byte, 0, 32)
		ended bool // the last symbol on the path is terminal already
	)

	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case sexprTerm:
			if len(path) == 0 || ended {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrBadSExpr, c, i)
			}
			words = append(words, string(path))
			ended = true

		case sexprClose:
			if len(path) == 0 {
				return nil, fmt.Errorf("%w: unbalanced %q at offset %d", ErrBadSExpr, c, i)
			}
			path = path[:len(path)-1]
			ended = true // a closed subtree can't be marked terminal

		default:
			if _, ok := alphabet.Index(c); !ok {
				return nil, fmt.Errorf("%w: %w %q at offset %d", ErrBadSExpr, alphabet.ErrInvalidSymbol, c, i)
			}
			path = append(path, c)
			ended = false
		}
	}

	if len(path) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed subtrees", ErrBadSExpr, len(path))
	}

	return words, nil
}
