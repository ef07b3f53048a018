// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/rogpeppe/go-internal/testscript"

	"mvdan.cc/brex/syntax"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"brex": main1,
	}))
}

var update = flag.Bool("u", false, "update testscript output files")

func TestScript(t *testing.T) {
	t.Parallel()
	testscript.Run(t, testscript.Params{
		Dir:           filepath.Join("testdata", "script"),
		UpdateScripts: *update,
	})
}

var statusTests = []struct {
	in      string
	verbose bool

	want       int
	wantStdout string
	wantStderr string // regular expression; empty means no output
}{
	{in: "{A,B,C}\n", want: 0, wantStdout: "A B C\n"},
	{in: "{A,B}{C,D}", want: 0, wantStdout: "AC AD BC BD\n"},
	{in: "{A,B{C,D}}\n", verbose: true, want: 0, wantStdout: "A BC BD\n"},

	{in: "a b\n", want: int(syntax.InvalidCharacter)},
	{in: "{A,}\n", want: int(syntax.EmptyAlternationChild)},
	{in: "foo{}bar\n", want: int(syntax.EmptyAlternation)},
	{in: "a{{b}c\n", want: int(syntax.UnclosedAlternation)},
	{in: "}c\n", want: int(syntax.MisplacedCharacter)},
	{in: "", want: int(syntax.EmptyInput)},
	{in: "a\nb\n", want: int(syntax.InvalidCharacter)},

	{
		in: "{A,}\n", verbose: true,
		want:       2,
		wantStderr: `(?s)1:4: empty alternation child: .*byte offset 3:\n\{A,\}\n   \^\n`,
	},
	{
		in: "", verbose: true,
		want:       8,
		wantStderr: `(?s)1:1: empty input: .*byte offset 0:.*`,
	},
}

func TestExitStatus(t *testing.T) {
	parser = syntax.NewParser()
	defer func() {
		in, out, errOut = os.Stdin, os.Stdout, os.Stderr
		*verbose = false
	}()
	for _, tc := range statusTests {
		t.Run("", func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			in, out, errOut = strings.NewReader(tc.in), &stdout, &stderr
			*verbose = tc.verbose

			got := expandStdin()
			qt.Assert(t, got, qt.Equals, tc.want, qt.Commentf("input: %q", tc.in))
			qt.Assert(t, stdout.String(), qt.Equals, tc.wantStdout)
			if tc.wantStderr == "" {
				qt.Assert(t, stderr.String(), qt.Equals, "")
			} else {
				qt.Assert(t, stderr.String(), qt.Matches, tc.wantStderr)
			}
		})
	}
}

func TestInteractive(t *testing.T) {
	parser = syntax.NewParser()
	input := "{A,B}\n}x\n\nabc"
	var stdout, stderr bytes.Buffer
	err := interactive(strings.NewReader(input), &stdout, &stderr)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, stdout.String(), qt.Equals, "$ A B\n$ $ $ abc\n")
	qt.Assert(t, stderr.String(), qt.Equals,
		"1:1: misplaced character: \"}\" must close a previous \"{\"\n}x\n^\n")
}

func TestExpandPathStreams(t *testing.T) {
	parser = syntax.NewParser()
	useEditorConfig = false
	defer func() {
		out, errOut = os.Stdout, os.Stderr
		useEditorConfig = true
	}()

	// 2^100 expansions could never fit in memory.
	path := filepath.Join(t.TempDir(), "huge.brex")
	err := os.WriteFile(path, []byte(strings.Repeat("{a,b}", 100)+"\n"), 0o666)
	qt.Assert(t, err, qt.IsNil)

	w := &limitWriter{max: 1 << 16}
	var stderr bytes.Buffer
	out, errOut = w, &stderr
	qt.Assert(t, expandPaths([]string{path}), qt.Equals, 1)
	qt.Assert(t, stderr.String(), qt.Equals, "output limit reached\n")
	qt.Assert(t, w.n > 0 && w.n <= w.max, qt.IsTrue, qt.Commentf("wrote %d bytes", w.n))
}

// limitWriter accepts up to max bytes, and fails after that.
type limitWriter struct {
	n, max int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.max {
		return 0, errors.New("output limit reached")
	}
	w.n += len(p)
	return len(p), nil
}
