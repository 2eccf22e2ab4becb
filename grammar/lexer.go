package grammar

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"livingroom/internal/parser"
	"livingroom/token"
)

// Lexer adapts the hand-written scanner to participle. Token values are
// canonical payloads (numbers in canonical decimal form, variable names
// without '$') so grammar fields can capture them directly. Ids keep their
// '#' and strings their quotes, since both may be empty.
var Lexer lexer.Definition = definition{}

var symbols = func() map[string]lexer.TokenType {
	m := map[string]lexer.TokenType{"EOF": lexer.EOF}
	for _, k := range token.Kinds() {
		m[k.String()] = tokenType(k)
	}
	return m
}()

func tokenType(k token.Kind) lexer.TokenType {
	return lexer.TokenType(k) + 1
}

type definition struct{}

func (definition) Symbols() map[string]lexer.TokenType {
	return symbols
}

func (d definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(data))
}

func (definition) LexString(filename string, input string) (lexer.Lexer, error) {
	lexemes, err := parser.NewScanner(input).ScanLexemes()
	if err != nil {
		return nil, err
	}
	return newStream(filename, input, lexemes), nil
}

// newStream feeds already scanned lexemes of input to participle.
func newStream(filename, input string, lexemes []parser.Lexeme) *stream {
	tokens := make([]lexer.Token, 0, len(lexemes))
	for _, lx := range lexemes {
		tokens = append(tokens, lexer.Token{
			Type:  tokenType(lx.Token.Kind),
			Value: value(lx.Token),
			Pos:   position(filename, lx.Position),
		})
	}

	eof := lexer.Token{Type: lexer.EOF, Pos: endPosition(filename, input)}
	return &stream{tokens: tokens, eof: eof}
}

func position(filename string, pos parser.Position) lexer.Position {
	return lexer.Position{
		Filename: filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

func endPosition(filename, input string) lexer.Position {
	lastLine := input[strings.LastIndexByte(input, '\n')+1:]
	return lexer.Position{
		Filename: filename,
		Offset:   len(input),
		Line:     strings.Count(input, "\n") + 1,
		Column:   utf8.RuneCountInString(lastLine) + 1,
	}
}

func value(tok token.Token) string {
	switch tok.Kind {
	case token.WORD, token.VARIABLE:
		return tok.Text
	case token.ID:
		return "#" + tok.Text
	case token.STRING:
		return `"` + tok.Text + `"`
	case token.WHITESPACE:
		return " "
	case token.WILDCARD:
		return "$"
	case token.HOLE:
		return "_"
	case token.BOOL:
		return strconv.FormatBool(tok.Bool)
	case token.NULL:
		return "null"
	case token.INT:
		return strconv.FormatInt(tok.Int, 10)
	case token.FLOAT:
		return strconv.FormatFloat(tok.Float, 'g', -1, 64)
	}
	return ""
}

type stream struct {
	tokens []lexer.Token
	pos    int
	eof    lexer.Token
}

func (s *stream) Next() (lexer.Token, error) {
	if s.pos >= len(s.tokens) {
		return s.eof, nil
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}
