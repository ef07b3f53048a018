// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package typedjson allows encoding and decoding brace expression syntax trees
// as JSON. Each node is an object with the keys:
//
//   - "type": one of "STRING", "SEQUENCE" or "ALTERNATION"
//   - "byteOffset": where the node starts in the input, starting at 0
//   - "source": the exact input the node was parsed from
//   - "children": the child nodes in order, omitted for strings
//
// The same document can be encoded in other formats via the yaml tags on
// Node.
package typedjson

import (
	"encoding/json"
	"fmt"
	"io"

	"mvdan.cc/brex/syntax"
)

// The node types, as they appear in the "type" key.
const (
	TypeString      = "STRING"
	TypeSequence    = "SEQUENCE"
	TypeAlternation = "ALTERNATION"
)

// Node is the document form of a syntax.Node.
type Node struct {
	Type       string  `json:"type" yaml:"type"`
	ByteOffset int     `json:"byteOffset" yaml:"byteOffset"`
	Source     string  `json:"source" yaml:"source"`
	Children   []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree returns the document form of node.
func Tree(node syntax.Node) *Node {
	doc := &Node{ByteOffset: node.Pos(), Source: node.String()}
	var children []syntax.Node
	switch node := node.(type) {
	case *syntax.Lit:
		doc.Type = TypeString
	case *syntax.Concat:
		doc.Type = TypeSequence
		children = node.Parts
	case *syntax.Choice:
		doc.Type = TypeAlternation
		children = node.Alts
	default:
		panic(fmt.Sprintf("typedjson.Tree: unexpected node type %T", node))
	}
	for _, child := range children {
		doc.Children = append(doc.Children, Tree(child))
	}
	return doc
}

// Encode is a shortcut for EncodeOptions.Encode, with the default options.
func Encode(w io.Writer, node syntax.Node) error {
	return EncodeOptions{}.Encode(w, node)
}

// EncodeOptions allows configuring how syntax nodes are encoded.
type EncodeOptions struct {
	Indent string // e.g. "\t"

	// Allows us to add options later.
}

// Encode writes node to w in its JSON form, followed by a newline,
// as described in the package documentation.
func (opts EncodeOptions) Encode(w io.Writer, node syntax.Node) error {
	enc := json.NewEncoder(w)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	return enc.Encode(Tree(node))
}

// Decode is a shortcut for DecodeOptions.Decode, with the default options.
func Decode(r io.Reader) (syntax.Node, error) {
	return DecodeOptions{}.Decode(r)
}

// DecodeOptions allows configuring how syntax nodes are decoded.
type DecodeOptions struct {
	// Empty for now; allows us to add options later.
}

// Decode reads a syntax tree from r in its JSON form,
// as described in the package documentation.
//
// The structure of the tree is checked, but the sources are taken as they
// are; they are not parsed again.
func (opts DecodeOptions) Decode(r io.Reader) (syntax.Node, error) {
	var doc Node
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return FromTree(&doc)
}

// FromTree returns the syntax tree which doc represents.
func FromTree(doc *Node) (syntax.Node, error) {
	children := make([]syntax.Node, 0, len(doc.Children))
	for _, child := range doc.Children {
		node, err := FromTree(child)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	switch doc.Type {
	case TypeString:
		if len(children) > 0 {
			return nil, fmt.Errorf("%s at byte offset %d cannot have children", doc.Type, doc.ByteOffset)
		}
		return &syntax.Lit{ValuePos: doc.ByteOffset, Value: doc.Source}, nil
	case TypeSequence:
		if len(children) < 2 {
			return nil, fmt.Errorf("%s at byte offset %d needs at least two children", doc.Type, doc.ByteOffset)
		}
		return &syntax.Concat{Parts: children, Source: doc.Source}, nil
	case TypeAlternation:
		if len(children) < 1 {
			return nil, fmt.Errorf("%s at byte offset %d needs at least one child", doc.Type, doc.ByteOffset)
		}
		return &syntax.Choice{
			Lbrace: doc.ByteOffset,
			Rbrace: doc.ByteOffset + len(doc.Source) - 1,
			Alts:   children,
			Source: doc.Source,
		}, nil
	}
	return nil, fmt.Errorf("unknown type: %q", doc.Type)
}
