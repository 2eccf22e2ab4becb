package grammar

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"livingroom/internal/parser"
)

var statementParser = participle.MustBuild[Statement](
	participle.Lexer(Lexer),
)

// ParseStatement parses one line. Lexical failures are returned as the
// scanner's *parser.ParseError.
func ParseStatement(text string) (*Statement, error) {
	return ParseNamed("", text)
}

// ParseNamed is ParseStatement with a file name recorded in term positions.
func ParseNamed(filename, text string) (*Statement, error) {
	stmt, err := statementParser.ParseString(filename, text)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, fmt.Errorf("parse statement: %w", err)
	}
	return stmt, nil
}

// ParseLexemes builds the statement for input from lexemes already scanned
// from it, without scanning input again.
func ParseLexemes(filename, input string, lexemes []parser.Lexeme) (*Statement, error) {
	lex, err := lexer.Upgrade(newStream(filename, input, lexemes))
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}
	stmt, err := statementParser.ParseFromLexer(lex)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}
	return stmt, nil
}
