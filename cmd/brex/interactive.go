// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/brex/syntax"
)

// interactive expands each line read from r as a separate brace expression,
// printing a "$ " prompt before each one. Parse errors are printed to ew
// along with an excerpt of the line, and do not stop the loop.
func interactive(r io.Reader, w, ew io.Writer) error {
	br := bufio.NewReader(r)
	fmt.Fprintf(w, "$ ")
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if line != "" && line != "\n" {
			if err := interactiveLine(line, w, ew); err != nil {
				return err
			}
		}
		if err == io.EOF {
			return nil
		}
		fmt.Fprintf(w, "$ ")
	}
}

func interactiveLine(line string, w, ew io.Writer) error {
	node, err := parser.Parse([]byte(line), "")
	var perr *syntax.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintln(ew, err)
		fmt.Fprintln(ew, syntax.Excerpt(strings.TrimSuffix(line, "\n"), perr.Offset))
		return nil
	}
	if err != nil {
		return err
	}
	return emit(w, node, separator(*lines))
}
