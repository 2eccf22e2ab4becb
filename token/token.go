// Package token SPDX-License-Identifier: Apache-2.0
package token

import "strconv"

type Kind int

const (
	WORD Kind = iota
	WHITESPACE
	ID
	VARIABLE
	WILDCARD
	HOLE
	BOOL
	NULL
	INT
	FLOAT
	STRING
)

var kindNames = [...]string{
	WORD:       "Word",
	WHITESPACE: "Whitespace",
	ID:         "Id",
	VARIABLE:   "Variable",
	WILDCARD:   "Wildcard",
	HOLE:       "Hole",
	BOOL:       "Bool",
	NULL:       "Null",
	INT:        "Int",
	FLOAT:      "Float",
	STRING:     "String",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds lists every token kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Token is one classified run of input. Only the payload field matching
// Kind is meaningful; the others stay zero so tokens compare with ==.
type Token struct {
	Kind  Kind
	Text  string // Word, Id, Variable, String
	Bool  bool
	Int   int64
	Float float64
}

func Word(text string) Token     { return Token{Kind: WORD, Text: text} }
func Whitespace() Token          { return Token{Kind: WHITESPACE} }
func Id(text string) Token       { return Token{Kind: ID, Text: text} }
func Variable(text string) Token { return Token{Kind: VARIABLE, Text: text} }
func Wildcard() Token            { return Token{Kind: WILDCARD} }
func Hole() Token                { return Token{Kind: HOLE} }
func Bool(b bool) Token          { return Token{Kind: BOOL, Bool: b} }
func Null() Token                { return Token{Kind: NULL} }
func Int(i int64) Token          { return Token{Kind: INT, Int: i} }
func Float(f float64) Token      { return Token{Kind: FLOAT, Float: f} }
func String(text string) Token   { return Token{Kind: STRING, Text: text} }

func (t Token) String() string {
	switch t.Kind {
	case WORD, ID, VARIABLE, STRING:
		return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
	case BOOL:
		return t.Kind.String() + "(" + strconv.FormatBool(t.Bool) + ")"
	case INT:
		return t.Kind.String() + "(" + strconv.FormatInt(t.Int, 10) + ")"
	case FLOAT:
		return t.Kind.String() + "(" + strconv.FormatFloat(t.Float, 'g', -1, 64) + ")"
	default:
		return t.Kind.String()
	}
}

var keywords = map[string]Token{
	"true":  Bool(true),
	"false": Bool(false),
	"null":  Null(),
}

// LookupWord reclassifies a complete word run. Only an exact match of a
// keyword changes the token; everything else stays a Word.
func LookupWord(text string) Token {
	if tok, ok := keywords[text]; ok {
		return tok
	}
	return Word(text)
}

// IsKeyword reports whether text is reclassified by LookupWord.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}
