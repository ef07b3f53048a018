// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/pkg/diff"
	diffwrite "github.com/pkg/diff/write"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
	"mvdan.cc/editorconfig"

	"mvdan.cc/brex/expand"
	"mvdan.cc/brex/fileutil"
	"mvdan.cc/brex/syntax"
	"mvdan.cc/brex/syntax/typedjson"
)

var (
	help        = flag.Bool("help", false, "")
	showVersion = flag.Bool("version", false, "")

	verbose = flag.Bool("verbose", false, "")
	toJSON  = flag.Bool("parse", false, "")
	toYAML  = flag.Bool("yaml", false, "")
	lines   = flag.Bool("lines", false, "")
	count   = flag.Bool("count", false, "")
	limit   = flag.Int("n", 0, "")

	maxSize  = flag.Int("max-size", syntax.DefaultMaxInputSize, "")
	maxDepth = flag.Int("max-depth", syntax.DefaultMaxDepth, "")

	list    = flag.Bool("l", false, "")
	write   = flag.Bool("w", false, "")
	diffOut = flag.Bool("d", false, "")
	find    = flag.Bool("f", false, "")

	// useEditorConfig will be false if any parser or output flags were used.
	useEditorConfig = true

	parser *syntax.Parser

	in     io.Reader = os.Stdin
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
	color  bool

	version = "(devel)" // to match the default from runtime/debug
)

func main() {
	os.Exit(main1())
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: brex [flags] [path ...]

Brex reads a brace expression like "a{b,c}d" and prints its expansion,
"abd acd". If no arguments are given, standard input will be used; a
terminal gets an interactive prompt. If a given path is a directory, it
will be recursively searched for `+fileutil.Ext+` files.

  -help       show this message and exit
  -version    show version and exit

  -verbose    print error diagnostics to standard error
  -parse      print the syntax tree as JSON instead (implies -verbose)
  -yaml       print the syntax tree as YAML instead (implies -parse)
  -lines      separate expansions with newlines instead of spaces
  -count      print the number of expansions instead
  -n int      print at most this many expansions (default 0, no limit)

Parser options:

  -max-size int    maximum input size in bytes (default `+strconv.Itoa(syntax.DefaultMaxInputSize)+`)
  -max-depth int   maximum brace nesting depth (default `+strconv.Itoa(syntax.DefaultMaxDepth)+`)

A limit of 0 or less means no limit.

Utilities for paths:

  -l        list files whose .txt expansion is missing or out of date
  -w        write each expansion to a .txt file next to its input
  -d        error with a diff when a .txt expansion is out of date
  -f        recursively find all `+fileutil.Ext+` files and print the paths

The exit status is 0 on success, or the kind of the first parse error:
1 for an invalid character, 2 for an empty alternation child, 3 for an
empty alternation, 4 for an unclosed alternation, 5 for a misplaced
character, 7 for input too large, and 8 for empty input.
`)
}

func main1() int {
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(errOut)
	flag.Usage = func() { usage(errOut) }
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if *help {
		usage(out)
		return 0
	}

	if *showVersion {
		// don't overwrite the version if it was set by -ldflags=-X
		if info, ok := debug.ReadBuildInfo(); ok && version == "(devel)" {
			mod := &info.Main
			if mod.Replace != nil {
				mod = mod.Replace
			}
			version = mod.Version
		}
		fmt.Fprintln(out, version)
		return 0
	}
	if *toYAML {
		*toJSON = true
	}
	if *toJSON {
		*verbose = true
	}
	if *limit < 0 {
		fmt.Fprintln(errOut, "-n cannot be negative")
		return 1
	}
	if os.Getenv("BREX_NO_EDITORCONFIG") == "true" {
		useEditorConfig = false
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-size", "max-depth", "lines":
			useEditorConfig = false
		}
	})
	parser = syntax.NewParser(syntax.MaxInputSize(*maxSize), syntax.MaxDepth(*maxDepth))

	if os.Getenv("FORCE_COLOR") == "true" {
		// Undocumented way to force color; used in the tests.
		color = true
	} else if os.Getenv("TERM") == "dumb" {
		// Equivalent to forcing color to be turned off.
	} else if isTerminal(out) {
		color = true
	}
	if flag.NArg() == 0 || (flag.NArg() == 1 && flag.Arg(0) == "-") {
		if *list || *write || *diffOut || *find {
			fmt.Fprintln(errOut, "-l, -w, -d and -f cannot be used on standard input")
			return 1
		}
		if flag.NArg() == 0 && isTerminal(in) {
			if err := interactive(in, out, errOut); err != nil {
				fmt.Fprintln(errOut, err)
				return 1
			}
			return 0
		}
		return expandStdin()
	}
	return expandPaths(flag.Args())
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func separator(lines bool) string {
	if lines {
		return "\n"
	}
	return " "
}

func expandStdin() int {
	src, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	node, err := parser.Parse(src, "")
	if err != nil {
		return reportErr(err, src)
	}
	if err := emit(out, node, separator(*lines)); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}

// emit writes what the flags ask for about a successfully parsed node:
// its syntax tree, its number of expansions, or the expansions themselves
// followed by a newline.
func emit(w io.Writer, node syntax.Node, sep string) error {
	switch {
	case *toYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(typedjson.Tree(node)); err != nil {
			return err
		}
		return enc.Close()
	case *toJSON:
		return typedjson.Encode(w, node)
	case *count:
		_, err := fmt.Fprintln(w, expand.Count(node))
		return err
	}
	if _, err := expand.Write(w, node, sep, *limit); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// reportErr returns the exit status for err, writing a diagnostic about it
// if requested. Parse errors use their kind as the exit status.
func reportErr(err error, src []byte) int {
	var perr *syntax.ParseError
	if !errors.As(err, &perr) {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if *verbose {
		fmt.Fprintln(errOut, err)
		fmt.Fprintf(errOut, "error occurred at byte offset %d:\n%s\n", perr.Offset,
			syntax.Excerpt(strings.TrimSuffix(string(src), "\n"), perr.Offset))
	}
	return int(perr.Kind)
}

var errChangedWithDiff = fmt.Errorf("")

// pathResult is the outcome of expanding a single file.
type pathResult struct {
	path string
	src  []byte

	parseErr error
	err      error // a problem with this file alone, reported in order

	// node and sep are kept to stream the expansion when printing it;
	// output is only filled with -l, -w or -d.
	node   syntax.Node
	sep    string
	output []byte

	// changed is set if the .txt output file is missing or out of date;
	// only checked with -l, -w or -d.
	changed bool
	diff    []byte
}

func expandPaths(args []string) int {
	var paths []string
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() && !*find {
			// When given paths to files directly, always expand them,
			// no matter their extension.
			paths = append(paths, arg)
			continue
		}
		if err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fileutil.SkipDir(info) {
				return filepath.SkipDir
			}
			if fileutil.CouldBeExpr(info) == fileutil.ConfIsExpr {
				paths = append(paths, path)
			}
			return nil
		}); err != nil {
			// Something went wrong walking the filesystem; stop.
			fmt.Fprintln(errOut, err)
			return 1
		}
	}
	if *find {
		for _, path := range paths {
			fmt.Fprintln(out, path)
		}
		return 0
	}

	// Expand concurrently, but report in order.
	results := make([]pathResult, len(paths))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := expandPath(path)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	status := 0
	for _, res := range results {
		err := reportPath(res, len(paths) > 1)
		st := 0
		switch {
		case err == nil:
		case err == errChangedWithDiff:
			st = 1
		case res.parseErr != nil:
			st = reportErr(err, res.src)
		default:
			fmt.Fprintln(errOut, err)
			st = 1
		}
		if status == 0 {
			status = st
		}
	}
	return status
}

var (
	ecMu    sync.Mutex
	ecQuery = editorconfig.Query{
		FileCache:   make(map[string]*editorconfig.File),
		RegexpCache: make(map[string]*regexp.Regexp),
	}
)

// propsParser returns the parser and separator to use for path, following
// any EditorConfig properties which apply to it.
func propsParser(path string) (*syntax.Parser, string, error) {
	if !useEditorConfig {
		return parser, separator(*lines), nil
	}
	// editorconfig.Query caches files, so it must not be used concurrently.
	ecMu.Lock()
	props, err := ecQuery.Find(path)
	ecMu.Unlock()
	if err != nil {
		return nil, "", err
	}
	p := parser
	var opts []syntax.ParserOption
	if n, err := strconv.Atoi(props.Get("brex_max_input_size")); err == nil {
		opts = append(opts, syntax.MaxInputSize(n))
	}
	if n, err := strconv.Atoi(props.Get("brex_max_depth")); err == nil {
		opts = append(opts, syntax.MaxDepth(n))
	}
	if len(opts) > 0 {
		opts = append([]syntax.ParserOption{
			syntax.MaxInputSize(*maxSize),
			syntax.MaxDepth(*maxDepth),
		}, opts...)
		p = syntax.NewParser(opts...)
	}
	return p, separator(props.Get("brex_lines") == "true"), nil
}

// expandPath expands the brace expression file at path. Parse errors are
// recorded in the result; the returned error is only for I/O failures.
func expandPath(path string) (pathResult, error) {
	res := pathResult{path: path}
	src, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	res.src = src
	p, sep, err := propsParser(path)
	if err != nil {
		return res, err
	}
	node, err := p.Parse(src, path)
	if err != nil {
		res.parseErr = err
		return res, nil
	}
	res.node, res.sep = node, sep
	if !*list && !*write && !*diffOut {
		return res, nil
	}
	if err := checkBuffered(path, node); err != nil {
		res.err = err
		return res, nil
	}
	var buf bytes.Buffer
	if err := emit(&buf, node, sep); err != nil {
		return res, err
	}
	res.output = buf.Bytes()

	outPath := fileutil.OutputPath(path)
	old, err := os.ReadFile(outPath)
	if err != nil && !os.IsNotExist(err) {
		return res, err
	}
	if err == nil && bytes.Equal(old, res.output) {
		return res, nil
	}
	res.changed = true
	if *write {
		if err := renameio.WriteFile(outPath, res.output, 0o666); err != nil {
			return res, err
		}
	}
	if *diffOut {
		opts := []diffwrite.Option{}
		if color {
			opts = append(opts, diffwrite.TerminalColor())
		}
		var dbuf bytes.Buffer
		if err := diff.Text(outPath+".orig", outPath, old, res.output, &dbuf, opts...); err != nil {
			return res, fmt.Errorf("computing diff: %s", err)
		}
		res.diff = dbuf.Bytes()
	}
	return res, nil
}

// maxFileWords caps how many expansions -l, -w and -d may hold in memory
// to compare with a .txt file.
const maxFileWords = 1 << 20

// checkBuffered errors if the output for node is too large to be held in
// memory, which happens when -l, -w or -d compare it with a .txt file.
func checkBuffered(path string, node syntax.Node) error {
	if *toJSON || *count {
		return nil
	}
	n := expand.Count(node)
	if *limit > 0 && n.Cmp(big.NewInt(int64(*limit))) > 0 {
		n.SetInt64(int64(*limit))
	}
	if n.Cmp(big.NewInt(maxFileWords)) > 0 {
		return fmt.Errorf("%s: %s expansions are too many to write to a file; use -n to limit them", path, n)
	}
	return nil
}

// reportPath writes the outcome of expanding a file, in the same way that
// expandStdin would. With multiple files, each output is prefixed by the
// file's path.
func reportPath(res pathResult, multiple bool) error {
	if res.parseErr != nil {
		return res.parseErr
	}
	if res.err != nil {
		return res.err
	}
	if *list && res.changed {
		if _, err := fmt.Fprintln(out, res.path); err != nil {
			return err
		}
	}
	if *diffOut && res.changed {
		if _, err := out.Write(res.diff); err != nil {
			return err
		}
		return errChangedWithDiff
	}
	if *list || *write || *diffOut {
		return nil
	}
	if multiple {
		if _, err := fmt.Fprintf(out, "%s: ", res.path); err != nil {
			return err
		}
	}
	return emit(out, res.node, res.sep)
}
