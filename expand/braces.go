// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"math/big"
	"slices"
	"strings"

	"mvdan.cc/brex/syntax"
)

// Braces returns the words that a brace expression expands to. For example,
// the tree for "a{b,c}{d,e}" expands to "abd", "abe", "acd" and "ace".
//
// Words are produced lazily, in order: the alternatives of a choice follow
// one another, and the last part of a concatenation varies the fastest.
// The number of words can grow exponentially with the size of the input,
// so callers should stop early if they only need a bounded amount.
//
// The returned sequence may be iterated any number of times, and always
// produces the same words.
func Braces(node syntax.Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		c := newCursor(node)
		var sb strings.Builder
		for {
			sb.Reset()
			c.word(&sb)
			if !yield(sb.String()) {
				return
			}
			if !c.advance() {
				return
			}
		}
	}
}

// All returns all the words that node expands to.
func All(node syntax.Node) []string {
	return slices.Collect(Braces(node))
}

// Count returns how many words node expands to, without expanding them.
func Count(node syntax.Node) *big.Int {
	switch node := node.(type) {
	case *syntax.Lit:
		return big.NewInt(1)
	case *syntax.Choice:
		n := new(big.Int)
		for _, alt := range node.Alts {
			n.Add(n, Count(alt))
		}
		return n
	case *syntax.Concat:
		n := big.NewInt(1)
		for _, part := range node.Parts {
			n.Mul(n, Count(part))
		}
		return n
	}
	panic(fmt.Sprintf("expand.Count: unexpected node type %T", node))
}

// Write writes the words that node expands to, separated by sep.
// If limit is positive, at most that many words are written.
// It returns the number of words written, and stops at the first error from w.
func Write(w io.Writer, node syntax.Node, sep string, limit int) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for word := range Braces(node) {
		if n > 0 {
			if _, err := bw.WriteString(sep); err != nil {
				return n, err
			}
		}
		if _, err := bw.WriteString(word); err != nil {
			return n, err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	return n, bw.Flush()
}

// cursor points at one of the words that a node expands to.
// Advancing past the last word rolls it back to the first one.
type cursor interface {
	// advance moves to the next word, and reports false if the cursor
	// rolled over to its first word instead.
	advance() bool
	// word writes the current word.
	word(*strings.Builder)
}

func newCursor(node syntax.Node) cursor {
	switch node := node.(type) {
	case *syntax.Lit:
		return litCursor(node.Value)
	case *syntax.Choice:
		c := &choiceCursor{alts: make([]cursor, len(node.Alts))}
		for i, alt := range node.Alts {
			c.alts[i] = newCursor(alt)
		}
		return c
	case *syntax.Concat:
		c := make(concatCursor, len(node.Parts))
		for i, part := range node.Parts {
			c[i] = newCursor(part)
		}
		return c
	}
	panic(fmt.Sprintf("expand.Braces: unexpected node type %T", node))
}

type litCursor string

func (litCursor) advance() bool              { return false }
func (c litCursor) word(sb *strings.Builder) { sb.WriteString(string(c)) }

type choiceCursor struct {
	alts []cursor
	cur  int
}

func (c *choiceCursor) advance() bool {
	if c.alts[c.cur].advance() {
		return true
	}
	// the current alternative rolled over, so it's ready to be reused
	if c.cur++; c.cur < len(c.alts) {
		return true
	}
	c.cur = 0
	return false
}

func (c *choiceCursor) word(sb *strings.Builder) { c.alts[c.cur].word(sb) }

type concatCursor []cursor

func (c concatCursor) advance() bool {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].advance() {
			return true
		}
	}
	return false
}

func (c concatCursor) word(sb *strings.Builder) {
	for _, part := range c {
		part.word(sb)
	}
}
