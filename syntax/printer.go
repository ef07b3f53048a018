// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Print writes the brace expression that node represents, built from its
// structure alone. For any tree returned by Parse, the output is the
// original input without its trailing newline.
func Print(w io.Writer, node Node) error {
	p := printer{Writer: bufio.NewWriter(w)}
	p.node(node)
	if err := p.Flush(); err != nil {
		return err
	}
	return p.err
}

type printer struct {
	*bufio.Writer
	err error
}

func (p *printer) node(node Node) {
	switch node := node.(type) {
	case *Lit:
		p.WriteString(node.Value)
	case *Choice:
		p.WriteByte('{')
		for i, alt := range node.Alts {
			if i > 0 {
				p.WriteByte(',')
			}
			p.node(alt)
		}
		p.WriteByte('}')
	case *Concat:
		for _, part := range node.Parts {
			p.node(part)
		}
	default:
		if p.err == nil {
			p.err = fmt.Errorf("syntax.Print: unexpected node type %T", node)
		}
	}
}

// Excerpt renders the part of src around offset, followed by a line with a
// caret pointing at offset. Long inputs are elided with "... " and " ..."
// to keep the caret near the middle.
func Excerpt(src string, offset int) string {
	const border = 25 // bytes to show on either side of offset
	var sb strings.Builder
	prefix := src[:offset]
	if offset > border {
		prefix = "... " + src[offset-(border-4):offset]
	}
	suffix := src[offset:]
	if len(suffix) > border {
		suffix = suffix[:border-3] + " ..."
	}
	if len(src) <= 2*border+1 {
		prefix, suffix = src[:offset], src[offset:]
	}
	sb.WriteString(printable(prefix))
	sb.WriteString(printable(suffix))
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", len(prefix)))
	sb.WriteByte('^')
	return sb.String()
}

// printable replaces bytes which would break the alignment of the caret.
func printable(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c < ' ' || c > '~' {
			b[i] = '?'
		}
	}
	return string(b)
}
