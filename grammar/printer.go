package grammar

import (
	"strconv"
	"strings"

	"livingroom/token"
)

// Format renders tokens back to source text. Whitespace runs come back as a
// single space, so the result is canonical rather than byte-identical.
func Format(tokens []token.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(formatToken(tok))
	}
	return b.String()
}

func (s *Statement) String() string {
	return Format(s.Tokens())
}

func formatToken(tok token.Token) string {
	switch tok.Kind {
	case token.WORD:
		return tok.Text
	case token.WHITESPACE:
		return " "
	case token.ID:
		return "#" + tok.Text
	case token.VARIABLE:
		return "$" + tok.Text
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
		s := strconv.FormatFloat(tok.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case token.STRING:
		return `"` + tok.Text + `"`
	}
	return ""
}
