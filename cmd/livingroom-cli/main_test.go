package main

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livingroom/internal/schema"
	"livingroom/internal/wire"
	"livingroom/token"
)

func init() {
	color.NoColor = true
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunPrintsIndentedJSON(t *testing.T) {
	code, stdout, stderr := runCLI("#ay 10.0")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "[\n  {\n    \"id\": \"ay\"\n  },\n  {\n    \"word\": \" \"\n  },\n  {\n    \"value\": 10.0\n  }\n]\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunCompact(t *testing.T) {
	code, stdout, _ := runCLI("-compact", "false 10.0 _ #ay")

	require.Equal(t, 0, code)
	assert.Equal(t, `[{"value":false},{"word":" "},{"value":10.0},{"word":" "},{"hole":true},{"word":" "},{"id":"ay"}]`+"\n", stdout)
}

func TestRunValidate(t *testing.T) {
	code, stdout, stderr := runCLI("-compact", "-validate", `$x is "at" 1 $ null`)

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `{"variable":"x"}`)
}

func TestRunEmptyInput(t *testing.T) {
	code, stdout, _ := runCLI("-compact", "")

	require.Equal(t, 0, code)
	assert.Equal(t, "[]\n", stdout)
}

func TestRunReportsUnterminatedString(t *testing.T) {
	code, stdout, stderr := runCLI(`say "hi`)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error[E0102]: unterminated string literal")
	assert.Contains(t, stderr, "--> <input>:1:5")
	assert.Contains(t, stderr, "    ^^^")
	assert.Contains(t, stderr, "failed to parse")
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage: livingroom")

	code, _, _ = runCLI("a", "b")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("-bogus", "a")
	assert.Equal(t, 2, code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", formatDuration(500*time.Nanosecond))
	assert.Equal(t, "1.5μs", formatDuration(1500*time.Nanosecond))
	assert.Equal(t, "2.0ms", formatDuration(2*time.Millisecond))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
}

func TestReportErrorCodes(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, "x", &schema.Error{Err: stderrors.New("conflicting values")})
	assert.Contains(t, buf.String(), "error[E0301]: wire schema: conflicting values")

	buf.Reset()
	reportError(&buf, "x", &wire.EncodeError{Token: token.Float(math.NaN()), Reason: "no JSON form"})
	assert.Contains(t, buf.String(), "error[E0201]: cannot encode Float(NaN): no JSON form")

	buf.Reset()
	reportError(&buf, "x", stderrors.New("boom"))
	assert.Equal(t, "error: boom\n\n", buf.String())
}
