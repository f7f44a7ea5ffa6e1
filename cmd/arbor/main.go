/*
Command arbor builds trees from HTML fragments and renders them.

	arbor -i '<p>Hello <b>World</b></p>'
	arbor -f fragments.html -o box
	arbor -t -o simple

Input is read from a file (-f, one fragment per line), from the command line
(-i) or from a set of built-in samples (-t). Trees are written to stdout,
everything else goes to stderr.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2021, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/urfave/cli"
)

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	inputStyle = color.New(color.FgGreen, color.Bold)
	hintStyle  = color.New(color.FgYellow)
)

// samples are rendered with -t.
var samples = []string{
	`<math><mi>b</mi></math>`,
	`<math><mover><mi>b</mi><mo>~</mo></mover></math>`,
	`<math><mover><mi mathvariant="bold">b</mi><mo>^</mo></mover></math>`,
	`<math><mfrac><mi>α</mi><mi>β</mi></mfrac></math>`,
	`<math><mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow></math>`,
	`<math><mrow><mi>sin</mi><mrow><mi>cos</mi><mi>a</mi></mrow></mrow></math>`,
	`<math><mrow><mfrac><mi>b</mi><mrow><mi>c</mi><mo>+</mo><mi>d</mi></mrow></mfrac></mrow></math>`,
	`<math><munderover><mo>∑</mo><mrow><mi>x</mi><mo>=</mo><mn>0</mn></mrow><mi>∞</mi></munderover><msup><mi>x</mi><mn>2</mn></msup></math>`,
	`<ul><li>one</li><li>two<ul><li>three</li><li>four</li></ul></li></ul>`,
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	success := true
	app := cli.NewApp()
	app.Name = "arbor"
	app.Usage = "Render trees built from HTML fragments"
	app.Version = "0.1.0"
	app.Writer = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "file,f",
			Usage: "Path to an HTML file, one fragment per line",
		},
		cli.StringFlag{
			Name:  "input,i",
			Usage: "HTML fragment to render",
		},
		cli.BoolFlag{
			Name:  "tests,t",
			Usage: "Render the built-in samples",
		},
		cli.StringFlag{
			Name:  "output,o",
			Value: "horizontal",
			Usage: "Output format: simple, horizontal, box, dot or html",
		},
		cli.StringFlag{
			Name:  "color",
			Value: "auto",
			Usage: "Colorize output: auto, always or never",
		},
		cli.StringFlag{
			Name:  "trace",
			Value: "error",
			Usage: "Trace level: debug, info or error",
		},
	}
	app.Action = func(c *cli.Context) error {
		if err := setupTracing(c.String("trace")); err != nil {
			return err
		}
		if err := setupColor(c.String("color"), stdout); err != nil {
			return err
		}
		out, err := newOutput(c.String("output"), stdout, stderr)
		if err != nil {
			return err
		}
		n := 0
		for _, name := range []string{"file", "input", "tests"} {
			if c.IsSet(name) {
				n++
			}
		}
		if n != 1 {
			return errors.New("exactly one of --file, --input or --tests is required")
		}
		switch {
		case c.Bool("tests"):
			for _, s := range samples {
				success = out.render(s) && success
			}
		case c.IsSet("file"):
			f, err := os.Open(c.String("file"))
			if err != nil {
				return err
			}
			defer f.Close()
			success = renderLines(out, f) && success
		default:
			success = renderLines(out, strings.NewReader(c.String("input"))) && success
		}
		out.finish()
		return nil
	}
	if err := app.Run(args); err != nil {
		errorStyle.Fprint(stderr, "command-line error: ")
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !success {
		return 1
	}
	return 0
}

func renderLines(out *output, r io.Reader) bool {
	success := true
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			success = out.render(line) && success
		}
	}
	if err := scanner.Err(); err != nil {
		errorStyle.Fprint(out.stderr, "input error: ")
		fmt.Fprintln(out.stderr, err)
		return false
	}
	return success
}

func setupTracing(level string) error {
	gtrace.CoreTracer = gologadapter.New()
	switch strings.ToLower(level) {
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	case "error":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	return nil
}

func setupColor(mode string, w io.Writer) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(w)
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}
