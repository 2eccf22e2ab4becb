package parser

import (
	stderrors "errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livingroom/internal/errors"
	"livingroom/token"
)

var (
	ws = token.Whitespace()
	w  = token.Word
)

func scan(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := Parse(input)
	require.NoError(t, err, "input %q", input)
	return tokens
}

func scanError(t *testing.T, input string) *ParseError {
	t.Helper()
	tokens, err := Parse(input)
	require.Error(t, err, "input %q", input)
	assert.Nil(t, tokens, "a failed scan returns no tokens")

	var pe *ParseError
	require.True(t, stderrors.As(err, &pe), "expected *ParseError, got %T", err)
	return pe
}

func TestScenarioSentence(t *testing.T) {
	got := scan(t, "gorog is at $x $y but _ sometimes $ 1")
	expected := []token.Token{
		w("gorog"), ws, w("is"), ws, w("at"), ws,
		token.Variable("x"), ws, token.Variable("y"), ws,
		w("but"), ws, token.Hole(), ws, w("sometimes"), ws,
		token.Wildcard(), ws, token.Int(1),
	}
	assert.Equal(t, expected, got)
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{"dot before digit", "hi.1", []token.Token{w("hi"), token.Float(0.1)}},
		{"dot before space", "hi. you", []token.Token{w("hi."), ws, w("you")}},
		{"trailing dot after int", "1.", []token.Token{token.Int(1), w(".")}},
		{"empty id", "#", []token.Token{token.Id("")}},
		{"id", "#ay", []token.Token{token.Id("ay")}},
		{"id name characters", "#ay1 x", []token.Token{token.Id("ay1"), ws, w("x")}},
		{"hole ends id", "#ay_b1 x", []token.Token{token.Id("ay"), token.Hole(), w("b"), token.Int(1), ws, w("x")}},
		{"hole after sigil of id", "#_", []token.Token{token.Id(""), token.Hole()}},
		{"id stops at punctuation", "#-", []token.Token{token.Id(""), w("-")}},
		{"empty string", `w""`, []token.Token{w("w"), token.String("")}},
		{"string verbatim", `"a b#$_" c`, []token.Token{token.String("a b#$_"), ws, w("c")}},
		{"negative int", "-10", []token.Token{token.Int(-10)}},
		{"positive int", "+1", []token.Token{token.Int(1)}},
		{"negative float", "-.5", []token.Token{token.Float(-0.5)}},
		{"float", "3.25", []token.Token{token.Float(3.25)}},
		{"float then float", "1.5.2", []token.Token{token.Float(1.5), token.Float(0.2)}},
		{"digits end words", "hi1", []token.Token{w("hi"), token.Int(1)}},
		{"sign inside word starts number", "a-1", []token.Token{w("a"), token.Int(-1)}},
		{"lone sign", "-", []token.Token{w("-")}},
		{"sign before letter", "+a", []token.Token{w("+a")}},
		{"hole after word", "a_", []token.Token{w("a"), token.Hole()}},
		{"hole before word", "_a", []token.Token{token.Hole(), w("a")}},
		{"adjacent holes", "__", []token.Token{token.Hole(), token.Hole()}},
		{"variable", "$abc", []token.Token{token.Variable("abc")}},
		{"variable name characters", "$x1y", []token.Token{token.Variable("x1y")}},
		{"hole ends variable", "$x_1", []token.Token{token.Variable("x"), token.Hole(), token.Int(1)}},
		{"hole after variable", "$x_", []token.Token{token.Variable("x"), token.Hole()}},
		{"hole after wildcard", "$_", []token.Token{token.Wildcard(), token.Hole()}},
		{"wildcard at end", "$", []token.Token{token.Wildcard()}},
		{"wildcard before space", "$ a", []token.Token{token.Wildcard(), ws, w("a")}},
		{"wildcard before digit", "$1", []token.Token{token.Wildcard(), token.Int(1)}},
		{"wildcard before punctuation", "$-", []token.Token{token.Wildcard(), w("-")}},
		{"wildcard before dot", "$.", []token.Token{token.Wildcard(), w(".")}},
		{"id inside word", "x#y", []token.Token{w("x"), token.Id("y")}},
		{"keywords", "true false null", []token.Token{token.Bool(true), ws, token.Bool(false), ws, token.Null()}},
		{"keyword prefix", "nullable", []token.Token{w("nullable")}},
		{"keyword suffix", "untrue", []token.Token{w("untrue")}},
		{"keyword split by digit", "true1", []token.Token{token.Bool(true), token.Int(1)}},
		{"unicode word", "café au lait", []token.Token{w("café"), ws, w("au"), ws, w("lait")}},
		{"punctuation word", "(a,b)!", []token.Token{w("(a,b)!")}},
		{"leading and trailing whitespace", "  a  ", []token.Token{ws, w("a"), ws}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scan(t, tt.input))
		})
	}
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, scan(t, ""))
}

func TestWhitespaceRunsCollapse(t *testing.T) {
	expected := []token.Token{w("a"), ws, w("b")}
	for _, input := range []string{"a b", "a    b", "a\tb", "a \t\r\n b", "a b"} {
		assert.Equal(t, expected, scan(t, input), "input %q", input)
	}
}

func TestDotLookahead(t *testing.T) {
	for _, x := range []string{"a", "hi", "gorog"} {
		for _, y := range []string{"0", "1", "25", "007"} {
			f, err := strconv.ParseFloat("0."+y, 64)
			require.NoError(t, err)
			assert.Equal(t, []token.Token{w(x), token.Float(f)}, scan(t, x+"."+y))
		}
	}
}

func TestHoleIsolation(t *testing.T) {
	for _, word := range []string{"a", "word", "x.y", "é"} {
		assert.Equal(t, []token.Token{w(word), token.Hole()}, scan(t, word+"_"))
		assert.Equal(t, []token.Token{token.Hole(), w(word)}, scan(t, "_"+word))
	}
}

func TestSignedIntegers(t *testing.T) {
	values := []int64{0, 1, -1, 42, -42, 1 << 40, math.MaxInt64, math.MinInt64}
	for _, n := range values {
		text := strconv.FormatInt(n, 10)
		assert.Equal(t, []token.Token{token.Int(n)}, scan(t, text), "input %q", text)
		if n >= 0 {
			assert.Equal(t, []token.Token{token.Int(n)}, scan(t, "+"+text), "input %q", "+"+text)
		}
	}
}

func TestLexemePositions(t *testing.T) {
	lexemes, err := NewScanner("ab\ncé \"s\"").ScanLexemes()
	require.NoError(t, err)
	require.Len(t, lexemes, 5)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, lexemes[0].Position)
	assert.Equal(t, "ab", lexemes[0].Text)

	assert.Equal(t, Position{Line: 1, Column: 3, Offset: 2}, lexemes[1].Position)
	assert.Equal(t, token.WHITESPACE, lexemes[1].Token.Kind)

	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 3}, lexemes[2].Position)
	assert.Equal(t, "cé", lexemes[2].Text)
	assert.Equal(t, 2, lexemes[2].Length)

	assert.Equal(t, Position{Line: 2, Column: 4, Offset: 7}, lexemes[4].Position)
	assert.Equal(t, `"s"`, lexemes[4].Text)
	assert.Equal(t, token.String("s"), lexemes[4].Token)
}

func TestUnterminatedString(t *testing.T) {
	pe := scanError(t, `w"`)
	assert.Equal(t, errors.ErrorUnterminatedString, pe.Code)
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 1}, pe.Position)
	assert.Equal(t, 1, pe.Length)
	assert.Equal(t, "1:2: unterminated string literal", pe.Error())

	pe = scanError(t, `ok "never closed`)
	assert.Equal(t, 4, pe.Position.Column)
	assert.Equal(t, 13, pe.Length)
}

func TestUnexpectedCharacter(t *testing.T) {
	pe := scanError(t, "a\x01b")
	assert.Equal(t, errors.ErrorUnexpectedCharacter, pe.Code)
	assert.Equal(t, 2, pe.Position.Column)
	assert.NotEmpty(t, pe.Notes)
}

func TestInvalidEncoding(t *testing.T) {
	pe := scanError(t, "ok \xff")
	assert.Equal(t, errors.ErrorInvalidEncoding, pe.Code)
	assert.Equal(t, 4, pe.Position.Column)
	assert.Contains(t, pe.Message, "0xff")

	pe = scanError(t, "\"a\xfe\"")
	assert.Equal(t, errors.ErrorInvalidEncoding, pe.Code)
	assert.Equal(t, 3, pe.Position.Column)
}

func TestNumberOutOfRange(t *testing.T) {
	pe := scanError(t, "x 9223372036854775808")
	assert.Equal(t, errors.ErrorNumberOutOfRange, pe.Code)
	assert.Equal(t, 3, pe.Position.Column)
	assert.Equal(t, 19, pe.Length)

	pe = scanError(t, "1"+strings.Repeat("0", 400)+".5")
	assert.Equal(t, errors.ErrorNumberOutOfRange, pe.Code)
	assert.Contains(t, pe.Message, "64-bit float")
}
