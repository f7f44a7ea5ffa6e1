package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/npillmayer/arbor"
	"github.com/npillmayer/arbor/html"
	"github.com/npillmayer/arbor/printer"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/term"
)

type renderer func(w io.Writer, tree *arbor.Tree[html.Element]) error

// output renders trees in one of the supported formats.
type output struct {
	format   string
	write    renderer
	branches printer.Branches
	stdout   io.Writer
	stderr   io.Writer
	columns  int // terminal width, 0 if stdout is not a terminal
	layout   bool
	tooWide  bool
}

func newOutput(format string, stdout, stderr io.Writer) (*output, error) {
	out := &output{format: format, stdout: stdout, stderr: stderr}
	out.columns = terminalWidth(stdout)
	var palette *printer.Palette
	if !color.NoColor {
		palette = printer.DefaultPalette()
	}
	switch format {
	case "simple":
		indent := printer.DefaultIndent
		indent.Palette = palette
		out.write = func(w io.Writer, tree *arbor.Tree[html.Element]) error {
			return printer.Simple(w, tree.CEntrance(), nil, indent)
		}
	case "horizontal", "box":
		out.layout = true
		out.branches = printer.DefaultBranches
		if format == "box" {
			out.branches = printer.BoxBranches
		}
		out.branches.Palette = palette
		out.write = func(w io.Writer, tree *arbor.Tree[html.Element]) error {
			return printer.Horizontal(w, tree.CEntrance(), nil, out.branches)
		}
	case "dot":
		out.write = func(w io.Writer, tree *arbor.Tree[html.Element]) error {
			return printer.Dot(w, tree.CEntrance(), nil)
		}
	case "html":
		out.write = func(w io.Writer, tree *arbor.Tree[html.Element]) error {
			if err := html.Render(w, tree.CEntrance(), nil); err != nil {
				return err
			}
			_, err := io.WriteString(w, "\n")
			return err
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return out, nil
}

// render parses a fragment and writes its tree, reporting success.
func (out *output) render(fragment string) bool {
	inputStyle.Fprint(out.stderr, "Input: ")
	fmt.Fprintln(out.stderr, fragment)
	tree, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		errorStyle.Fprint(out.stderr, "parse error: ")
		fmt.Fprintln(out.stderr, err)
		return false
	}
	tracer().Debugf("%s: tree with %d nodes, depth %d",
		out.format, tree.Len(), arbor.Depth(tree.CEntrance()))
	if out.layout && out.columns > 0 {
		if w := printer.Width(tree.CEntrance(), nil, out.branches); w > out.columns {
			out.tooWide = true
		}
	}
	fmt.Fprintln(out.stderr, "Tree:")
	fmt.Fprintln(out.stderr)
	if err = out.write(out.stdout, tree); err != nil {
		errorStyle.Fprint(out.stderr, "output error: ")
		fmt.Fprintln(out.stderr, err)
		return false
	}
	fmt.Fprint(out.stderr, out.separator())
	return true
}

func (out *output) separator() string {
	n := 80
	if out.columns > 0 {
		n = out.columns
	}
	return "\n" + strings.Repeat("=", n) + "\n\n"
}

// finish prints a hint if a tree was wider than the terminal.
func (out *output) finish() {
	if out.tooWide {
		hintStyle.Fprintln(out.stderr, "You might want to make your terminal fullscreen :)")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// terminalWidth returns the number of columns of the terminal w writes to,
// or 0 if w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return cols
}

func tracer() tracing.Trace {
	return tracing.Select("arbor")
}
