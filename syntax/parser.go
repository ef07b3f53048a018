// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "fmt"

// ErrorKind classifies a parse error. Its numeric values are stable, as
// they are used as process exit status codes by cmd/brex.
type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota + 1
	EmptyAlternationChild
	EmptyAlternation
	UnclosedAlternation
	MisplacedCharacter
	_ // 6 is reserved and never returned
	InputTooLarge
	EmptyInput
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "invalid character"
	case EmptyAlternationChild:
		return "empty alternation child"
	case EmptyAlternation:
		return "empty alternation"
	case UnclosedAlternation:
		return "unclosed alternation"
	case MisplacedCharacter:
		return "misplaced character"
	case InputTooLarge:
		return "input too large"
	case EmptyInput:
		return "empty input"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError represents an error found when parsing a brace expression.
type ParseError struct {
	Kind ErrorKind

	// Offset is the byte offset at which the error was detected,
	// starting at 0. It may be equal to the length of the input.
	Offset int

	Filename, Text string
}

func (e *ParseError) Error() string {
	prefix := ""
	if e.Filename != "" {
		prefix = e.Filename + ":"
	}
	// Brace expressions are a single line, so the column is the offset.
	return fmt.Sprintf("%s1:%d: %s: %s", prefix, e.Offset+1, e.Kind, e.Text)
}

// ParserOption is a function which can be passed to NewParser
// to alter its behavior. To apply option to existing Parser
// call it directly, for example syntax.MaxDepth(10)(parser).
type ParserOption func(*Parser)

// MaxInputSize limits the length of the input in bytes, not counting a
// trailing newline. Larger inputs fail with InputTooLarge before any parsing
// happens. Zero or a negative value means no limit.
func MaxInputSize(n int) ParserOption {
	return func(p *Parser) { p.maxSize = n }
}

// MaxDepth limits how deeply brace groups may be nested. Deeper inputs fail
// with InputTooLarge before any parsing happens. Zero or a negative value
// means no limit.
func MaxDepth(n int) ParserOption {
	return func(p *Parser) { p.maxDepth = n }
}

// Parser holds the configuration used to parse brace expressions.
//
// A Parser keeps no state between calls, so it is safe for concurrent use.
type Parser struct {
	maxSize  int
	maxDepth int
}

// NewParser allocates a new Parser and applies any number of options.
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{
		maxSize:  DefaultMaxInputSize,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse parses a brace expression with an optional name, which is only used
// in error messages. A single trailing newline in src is ignored.
//
// On failure, the returned error is a *ParseError describing the first
// problem found, and the returned node is nil.
func (p *Parser) Parse(src []byte, name string) (Node, error) {
	s := trimNewline(string(src))
	if err := p.checkLimits(s); err != nil {
		err.Filename = name
		return nil, err
	}
	node, err := parse(s)
	if err != nil {
		err.Filename = name
		return nil, err
	}
	return node, nil
}

// Parse is a shortcut for NewParser().Parse(src, "").
func Parse(src []byte) (Node, error) {
	return NewParser().Parse(src, "")
}

// group is an open brace group, or the top level of the input if choice is
// nil.
type group struct {
	choice *Choice
	commas bool

	// parts holds the nodes of the alternative being parsed.
	parts []Node
}

// endAlt adds the alternative being parsed to the group's choice.
func (g *group) endAlt(src string) {
	g.choice.Alts = append(g.choice.Alts, newConcat(src, g.parts))
	g.parts = nil
}

// parse does a single pass over src, keeping a stack of the open brace
// groups instead of recursing, so that deep nesting cannot exhaust the
// goroutine stack.
func parse(src string) (Node, *ParseError) {
	if src == "" {
		return nil, &ParseError{Kind: EmptyInput, Text: "cannot parse empty input"}
	}
	open := []*group{{}}
	cur := open[0]
	for i := 0; i < len(src); i++ {
		switch b := src[i]; {
		case IsLetter(b):
			j := i + 1
			for j < len(src) && IsLetter(src[j]) {
				j++
			}
			cur.parts = append(cur.parts, &Lit{ValuePos: i, Value: src[i:j]})
			i = j - 1
		case b == '{':
			cur = &group{choice: &Choice{Lbrace: i}}
			open = append(open, cur)
		case b == ',':
			if cur.choice == nil {
				return nil, &ParseError{
					Kind:   MisplacedCharacter,
					Offset: i,
					Text:   `"," can only separate alternatives inside braces`,
				}
			}
			if len(cur.parts) == 0 {
				return nil, emptyChild(i)
			}
			cur.endAlt(src)
			cur.commas = true
		case b == '}':
			if cur.choice == nil {
				return nil, &ParseError{
					Kind:   MisplacedCharacter,
					Offset: i,
					Text:   `"}" must close a previous "{"`,
				}
			}
			if len(cur.parts) == 0 {
				if !cur.commas {
					return nil, &ParseError{
						Kind:   EmptyAlternation,
						Offset: i,
						Text:   `braces must contain at least one alternative, like "{foo}"`,
					}
				}
				return nil, emptyChild(i)
			}
			cur.endAlt(src)
			choice := cur.choice
			choice.Rbrace = i
			choice.Source = src[choice.Lbrace : i+1]

			open = open[:len(open)-1]
			cur = open[len(open)-1]
			cur.parts = append(cur.parts, choice)
		default:
			return nil, &ParseError{
				Kind:   InvalidCharacter,
				Offset: i,
				Text: fmt.Sprintf(`%q is not allowed; only ASCII letters, "{", "}" and "," are`,
					src[i:i+1]),
			}
		}
	}
	if cur.choice != nil {
		return nil, &ParseError{
			Kind:   UnclosedAlternation,
			Offset: len(src),
			Text: fmt.Sprintf(`reached the end of input without closing the "{" at byte offset %d`,
				cur.choice.Lbrace),
		}
	}
	return newConcat(src, cur.parts), nil
}

func emptyChild(offset int) *ParseError {
	return &ParseError{
		Kind:   EmptyAlternationChild,
		Offset: offset,
		Text:   "alternatives separated by commas cannot be empty",
	}
}
