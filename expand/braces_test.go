// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"mvdan.cc/brex/syntax"
)

var braceTests = []struct {
	in   string
	want string
}{
	{"{A,B,C}", "A B C"},
	{"{A,B}{C,D}", "AC AD BC BD"},
	{"{A,B{C,D}}", "A BC BD"},
	{"{ABC}", "ABC"},
	{"ABC", "ABC"},
	{"ABC\n", "ABC"},
	{"a{b,c}", "ab ac"},
	{"a{b,c}d{e,f}g", "abdeg abdfg acdeg acdfg"},
	{"a{b{x,y},c}d", "abxd abyd acd"},
	{"{{a,b},{c,d}}", "a b c d"},
	{"{b,a}", "b a"},
	{"{a,a}", "a a"},
	{"{{{x}}}", "x"},
	{"{x}{y}{z}", "xyz"},
	{"{a,b}{c,d}{e,f}", "ace acf ade adf bce bcf bde bdf"},
	{"ha{x,foo{bar,baz{zy,z}}}{a,b}", "haxa haxb hafoobara hafoobarb hafoobazzya hafoobazzyb hafoobazza hafoobazzb"},
}

func parse(tb testing.TB, src string) syntax.Node {
	tb.Helper()
	node, err := syntax.Parse([]byte(src))
	qt.Assert(tb, err, qt.IsNil)
	return node
}

func TestBraces(t *testing.T) {
	t.Parallel()
	for i, tc := range braceTests {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			node := parse(t, tc.in)
			want := strings.Fields(tc.want)

			got := All(node)
			qt.Assert(t, got, qt.DeepEquals, want)

			// Iterating again gives the same words.
			qt.Assert(t, All(node), qt.DeepEquals, want)

			qt.Assert(t, Count(node).Int64(), qt.Equals, int64(len(want)))

			var sb strings.Builder
			n, err := Write(&sb, node, " ", 0)
			qt.Assert(t, err, qt.IsNil)
			qt.Assert(t, n, qt.Equals, len(want))
			qt.Assert(t, sb.String(), qt.Equals, strings.Join(want, " "))
		})
	}
}

func TestBracesLazy(t *testing.T) {
	t.Parallel()
	// 2^64 words; only the first few are ever built.
	src := strings.Repeat("{a,b}", 64)
	node := parse(t, src)

	want := new(big.Int).Lsh(big.NewInt(1), 64)
	qt.Assert(t, Count(node).Cmp(want), qt.Equals, 0)

	var got []string
	for word := range Braces(node) {
		got = append(got, word)
		if len(got) == 3 {
			break
		}
	}
	prefix := strings.Repeat("a", 63)
	qt.Assert(t, got, qt.DeepEquals, []string{prefix + "a", prefix + "b", prefix[:62] + "ba"})

	var sb strings.Builder
	n, err := Write(&sb, node, "\n", 2)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, n, qt.Equals, 2)
	qt.Assert(t, sb.String(), qt.Equals, prefix+"a\n"+prefix+"b")
}

func TestBracesRestart(t *testing.T) {
	t.Parallel()
	seq := Braces(parse(t, "x{a,b{c,d}}y"))
	var first []string
	for word := range seq {
		first = append(first, word)
		break
	}
	var all []string
	for word := range seq {
		all = append(all, word)
	}
	qt.Assert(t, first, qt.DeepEquals, []string{"xay"})
	qt.Assert(t, all, qt.DeepEquals, []string{"xay", "xbcy", "xbdy"})
}

func TestBracesDeep(t *testing.T) {
	t.Parallel()
	const depth = syntax.DefaultMaxDepth
	src := strings.Repeat("{a,", depth) + "b" + strings.Repeat("}", depth)
	node := parse(t, src)
	got := All(node)
	qt.Assert(t, len(got), qt.Equals, depth+1)
	qt.Assert(t, got[0], qt.Equals, "a")
	qt.Assert(t, got[depth], qt.Equals, "b")
}

func TestWriteError(t *testing.T) {
	t.Parallel()
	w := &errWriter{}
	_, err := Write(w, parse(t, "{a,b}"), " ", 0)
	qt.Assert(t, err, qt.ErrorMatches, "write failed")
	qt.Assert(t, w.calls, qt.Equals, 1)

	// 2^40 words; a failed writer must stop the expansion right away.
	w = &errWriter{}
	n, err := Write(w, parse(t, strings.Repeat("{a,b}", 40)), "\n", 0)
	qt.Assert(t, err, qt.ErrorMatches, "write failed")
	qt.Assert(t, w.calls, qt.Equals, 1)
	// Only the words which fit in the buffer before the first flush.
	qt.Assert(t, n > 0 && n < 200, qt.IsTrue, qt.Commentf("wrote %d words", n))
}

func TestWriteLimit(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	n, err := Write(&sb, parse(t, "{a,b,c}{d,e}"), " ", 3)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, n, qt.Equals, 3)
	qt.Assert(t, sb.String(), qt.Equals, "ad ae bd")
}

// errWriter fails every write, counting how many it was given.
type errWriter struct {
	calls int
}

func (w *errWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, fmt.Errorf("write failed")
}

func BenchmarkWrite(b *testing.B) {
	b.ReportAllocs()
	node := parse(b, "ha{x,foo{bar,baz{zy,z}}}"+strings.Repeat("{a,b}", 10))
	for i := 0; i < b.N; i++ {
		if _, err := Write(io.Discard, node, "\n", 0); err != nil {
			b.Fatal(err)
		}
	}
}
