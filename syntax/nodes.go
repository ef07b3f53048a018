// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

// Node represents a node in a brace expression syntax tree.
//
// The set of implementations is closed: *Lit, *Choice and *Concat.
type Node interface {
	// Pos returns the byte offset of the first character of the node,
	// starting at 0.
	Pos() int
	// End returns the byte offset immediately after the node.
	End() int
	// String returns the exact source the node was parsed from.
	String() string

	braceNode()
}

func (*Lit) braceNode()    {}
func (*Choice) braceNode() {}
func (*Concat) braceNode() {}

// Lit is a maximal run of one or more ASCII letters, such as "foo".
type Lit struct {
	ValuePos int
	Value    string
}

func (l *Lit) Pos() int       { return l.ValuePos }
func (l *Lit) End() int       { return l.ValuePos + len(l.Value) }
func (l *Lit) String() string { return l.Value }

// Choice is a brace group such as "{foo,bar}". Each of its alternatives
// expands in order, one after the other.
//
// Alts always has at least one element; "{foo}" is a valid choice with a
// single alternative.
type Choice struct {
	Lbrace, Rbrace int
	Alts           []Node

	// Source is the input from Lbrace to Rbrace, both included.
	Source string
}

func (c *Choice) Pos() int       { return c.Lbrace }
func (c *Choice) End() int       { return c.Rbrace + 1 }
func (c *Choice) String() string { return c.Source }

// Concat is a sequence of adjacent nodes, such as "foo{a,b}bar", whose
// expansions are combined as a cartesian product.
//
// Parts always has at least two elements; a sequence of one node is
// represented by that node alone.
type Concat struct {
	Parts []Node

	// Source is the input from the first part to the last one.
	Source string
}

func (c *Concat) Pos() int       { return c.Parts[0].Pos() }
func (c *Concat) End() int       { return c.Parts[len(c.Parts)-1].End() }
func (c *Concat) String() string { return c.Source }

// newConcat returns the single node in parts if there is only one, or a
// *Concat node spanning all of them otherwise.
func newConcat(src string, parts []Node) Node {
	if len(parts) == 1 {
		return parts[0]
	}
	c := &Concat{Parts: parts}
	c.Source = src[c.Pos():c.End()]
	return c
}
