// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"livingroom/internal/errors"
	"livingroom/internal/parser"
	"livingroom/internal/schema"
	"livingroom/internal/wire"
)

var log = commonlog.GetLogger("livingroom.cli")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run tokenizes the single positional argument and writes its JSON encoding
// to stdout. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("livingroom", flag.ContinueOnError)
	flags.SetOutput(stderr)
	compact := flags.Bool("compact", false, "print the JSON on a single line")
	validate := flags.Bool("validate", false, "check the output against the wire schema")
	verbose := flags.Bool("v", false, "enable debug logging")
	noColor := flags.Bool("no-color", false, "disable coloured output")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: livingroom [flags] <text>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	if *noColor {
		color.NoColor = true
	}
	if *verbose {
		commonlog.Configure(2, nil)
	}

	startTime := time.Now()
	text := flags.Arg(0)

	var (
		out string
		err error
	)
	if *compact {
		out, err = parser.ParseToJSON(text)
	} else {
		out, err = parser.ParseToJSONIndent(text, "", "  ")
	}
	if err == nil && *validate {
		err = schema.Validate([]byte(out))
	}

	duration := formatDuration(time.Since(startTime))
	if err != nil {
		reportError(stderr, text, err)
		color.New(color.FgRed).Fprintf(stderr, "failed to parse after %s\n", duration)
		return 1
	}

	log.Debugf("tokenized %d bytes in %s", len(text), duration)
	fmt.Fprintln(stdout, out)
	return 0
}

func reportError(w io.Writer, text string, err error) {
	var pe *parser.ParseError
	if stderrors.As(err, &pe) {
		fmt.Fprint(w, errors.NewErrorReporter("<input>", text).FormatError(pe.Diagnostic))
		return
	}

	code := ""
	var ee *wire.EncodeError
	var se *schema.Error
	switch {
	case stderrors.As(err, &ee):
		code = errors.ErrorUnencodableValue
	case stderrors.As(err, &se):
		code = errors.ErrorSchemaViolation
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	if code == "" {
		fmt.Fprintf(w, "%s: %v\n\n", red("error"), err)
		return
	}
	fmt.Fprintf(w, "%s[%s]: %v\n  = note: %s\n\n", red("error"), code, err, errors.Description(code))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
