package grammar_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livingroom/grammar"
	lexerrors "livingroom/internal/errors"
	"livingroom/internal/parser"
	"livingroom/token"
)

func TestPattern(t *testing.T) {
	input := "gorog is at $x $y but _ sometimes $ 1"
	stmt, err := grammar.ParseStatement(input)
	require.NoError(t, err)

	expected, err := parser.Parse(input)
	require.NoError(t, err)

	assert.Equal(t, expected, stmt.Tokens())
	assert.True(t, stmt.IsPattern())
	assert.Equal(t, []string{"x", "y"}, stmt.Variables())
	assert.Equal(t, input, stmt.String())
}

func TestFact(t *testing.T) {
	stmt, err := grammar.ParseStatement(`#ay is "here" at 1.5 -2 true null`)
	require.NoError(t, err)

	assert.False(t, stmt.IsPattern())
	assert.Empty(t, stmt.Variables())

	require.Len(t, stmt.Terms, 15)
	require.NotNil(t, stmt.Terms[0].ID)
	assert.Equal(t, "ay", string(*stmt.Terms[0].ID))
	require.NotNil(t, stmt.Terms[4].String)
	assert.Equal(t, "here", string(*stmt.Terms[4].String))
	require.NotNil(t, stmt.Terms[8].Float)
	assert.Equal(t, 1.5, *stmt.Terms[8].Float)
	require.NotNil(t, stmt.Terms[10].Int)
	assert.Equal(t, int64(-2), *stmt.Terms[10].Int)
	require.NotNil(t, stmt.Terms[12].Bool)
	assert.True(t, bool(*stmt.Terms[12].Bool))
	assert.True(t, stmt.Terms[14].Null)
}

func TestEmptyPayloads(t *testing.T) {
	stmt, err := grammar.ParseStatement(`# w""`)
	require.NoError(t, err)

	assert.Equal(t, []token.Token{
		token.Id(""), token.Whitespace(), token.Word("w"), token.String(""),
	}, stmt.Tokens())
}

func TestEmptyStatement(t *testing.T) {
	stmt, err := grammar.ParseStatement("")
	require.NoError(t, err)
	assert.Empty(t, stmt.Terms)
	assert.False(t, stmt.IsPattern())
}

func TestVariablesAreDistinct(t *testing.T) {
	stmt, err := grammar.ParseStatement("$b likes $a and $b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, stmt.Variables())
}

func TestHoleAndWildcardMakePatterns(t *testing.T) {
	for _, input := range []string{"_", "a $", "$ is _"} {
		stmt, err := grammar.ParseStatement(input)
		require.NoError(t, err)
		assert.True(t, stmt.IsPattern(), input)
		assert.Empty(t, stmt.Variables(), input)
	}
}

func TestLexicalErrorsPassThrough(t *testing.T) {
	_, err := grammar.ParseStatement(`say "hi`)
	require.Error(t, err)

	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, lexerrors.ErrorUnterminatedString, pe.Code)
	assert.Equal(t, 5, pe.Position.Column)
}

func TestFormatIsCanonical(t *testing.T) {
	tokens, err := parser.Parse("a \t  b\n10.0 +3 hi.1")
	require.NoError(t, err)
	assert.Equal(t, "a b 10.0 3 hi0.1", grammar.Format(tokens))
}

func TestFormatReparses(t *testing.T) {
	for _, input := range []string{
		"gorog is at $x $y but _ sometimes $ 1",
		`#ay w"" -10 true null 2.5 $`,
		"a_b (c) 1. x",
	} {
		tokens, err := parser.Parse(input)
		require.NoError(t, err)

		again, err := parser.Parse(grammar.Format(tokens))
		require.NoError(t, err)
		assert.Equal(t, tokens, again, input)
	}
}

func TestTermAt(t *testing.T) {
	stmt, err := grammar.ParseStatement("ab $x")
	require.NoError(t, err)

	term := stmt.TermAt(1, 4)
	require.NotNil(t, term)
	require.NotNil(t, term.Variable)
	assert.Equal(t, "x", *term.Variable)

	term = stmt.TermAt(1, 1)
	require.NotNil(t, term)
	require.NotNil(t, term.Word)
	assert.Equal(t, "ab", *term.Word)

	assert.Nil(t, stmt.TermAt(2, 1))
}

func TestParseLexemesMatchesParseStatement(t *testing.T) {
	for _, input := range []string{
		"gorog is at $x $y but _ sometimes $ 1",
		`#ay "s" 1.5 true`,
		"",
	} {
		lexemes, err := parser.NewScanner(input).ScanLexemes()
		require.NoError(t, err)

		fromLexemes, err := grammar.ParseLexemes("", input, lexemes)
		require.NoError(t, err)
		fromText, err := grammar.ParseStatement(input)
		require.NoError(t, err)

		assert.Equal(t, fromText.Tokens(), fromLexemes.Tokens(), input)
		assert.Equal(t, fromText.IsPattern(), fromLexemes.IsPattern(), input)
		assert.Equal(t, fromText.Variables(), fromLexemes.Variables(), input)
	}
}
