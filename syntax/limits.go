// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "fmt"

const (
	// DefaultMaxInputSize is the default limit on the length of the input,
	// in bytes, excluding a trailing newline.
	DefaultMaxInputSize = 1 << 20

	// DefaultMaxDepth is the default limit on how deeply brace groups may
	// be nested.
	DefaultMaxDepth = 1000
)

// checkLimits rejects input which is too large to be parsed safely.
// It only looks at sizes and brace nesting, so it runs before and
// regardless of any syntax error the input might also contain.
func (p *Parser) checkLimits(src string) *ParseError {
	if p.maxSize > 0 && len(src) > p.maxSize {
		return &ParseError{
			Kind: InputTooLarge,
			Text: fmt.Sprintf("input has %d bytes, but at most %d are allowed",
				len(src), p.maxSize),
		}
	}
	if p.maxDepth <= 0 {
		return nil
	}
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{':
			if depth++; depth > p.maxDepth {
				return &ParseError{
					Kind:   InputTooLarge,
					Offset: i,
					Text: fmt.Sprintf("braces nested more than %d levels deep",
						p.maxDepth),
				}
			}
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return nil
}
