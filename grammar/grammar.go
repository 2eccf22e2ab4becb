package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"livingroom/token"
)

// Statement is one line of fact/pattern text as a flat list of terms.
type Statement struct {
	Pos   lexer.Position
	Terms []*Term `parser:"@@*"`
}

type Term struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Whitespace bool     `parser:"  @Whitespace"`
	Word       *string  `parser:"| @Word"`
	ID         *IDName  `parser:"| @Id"`
	Variable   *string  `parser:"| @Variable"`
	Wildcard   bool     `parser:"| @Wildcard"`
	Hole       bool     `parser:"| @Hole"`
	Bool       *Boolean `parser:"| @Bool"`
	Null       bool     `parser:"| @Null"`
	Int        *int64   `parser:"| @Int"`
	Float      *float64 `parser:"| @Float"`
	String     *Quoted  `parser:"| @String"`
}

type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

// IDName is an id without its leading '#'.
type IDName string

func (n *IDName) Capture(values []string) error {
	*n = IDName(strings.TrimPrefix(values[0], "#"))
	return nil
}

// Quoted is string contents without the surrounding quotes.
type Quoted string

func (q *Quoted) Capture(values []string) error {
	v := values[0]
	if len(v) >= 2 {
		v = v[1 : len(v)-1]
	}
	*q = Quoted(v)
	return nil
}

// Token converts the term back into the token it was parsed from.
func (t *Term) Token() token.Token {
	switch {
	case t.Whitespace:
		return token.Whitespace()
	case t.Word != nil:
		return token.Word(*t.Word)
	case t.ID != nil:
		return token.Id(string(*t.ID))
	case t.Variable != nil:
		return token.Variable(*t.Variable)
	case t.Wildcard:
		return token.Wildcard()
	case t.Hole:
		return token.Hole()
	case t.Bool != nil:
		return token.Bool(bool(*t.Bool))
	case t.Null:
		return token.Null()
	case t.Int != nil:
		return token.Int(*t.Int)
	case t.Float != nil:
		return token.Float(*t.Float)
	default:
		return token.String(string(*t.String))
	}
}

func (s *Statement) Tokens() []token.Token {
	tokens := make([]token.Token, len(s.Terms))
	for i, t := range s.Terms {
		tokens[i] = t.Token()
	}
	return tokens
}

// IsPattern reports whether the statement has a variable, wildcard or hole
// and so matches facts rather than stating one.
func (s *Statement) IsPattern() bool {
	for _, t := range s.Terms {
		if t.Variable != nil || t.Wildcard || t.Hole {
			return true
		}
	}
	return false
}

// Variables returns the distinct variable names in order of first use.
func (s *Statement) Variables() []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range s.Terms {
		if t.Variable == nil || seen[*t.Variable] {
			continue
		}
		seen[*t.Variable] = true
		names = append(names, *t.Variable)
	}
	return names
}

// TermAt returns the term covering the 1-based line and column, or nil.
func (s *Statement) TermAt(line, column int) *Term {
	for _, t := range s.Terms {
		if before(line, column, t.Pos) {
			return nil
		}
		if before(line, column, t.EndPos) {
			return t
		}
	}
	return nil
}

func before(line, column int, pos lexer.Position) bool {
	return line < pos.Line || (line == pos.Line && column < pos.Column)
}
