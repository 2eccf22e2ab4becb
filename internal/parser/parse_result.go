package parser

import (
	"livingroom/internal/wire"
	"livingroom/token"
)

// Parse tokenizes text. It is the core entry point: all or nothing, with
// no partial result on failure.
func Parse(text string) ([]token.Token, error) {
	lexemes, err := NewScanner(text).ScanLexemes()
	if err != nil {
		return nil, err
	}
	return Tokens(lexemes), nil
}

// Tokens drops the source information from lexemes.
func Tokens(lexemes []Lexeme) []token.Token {
	tokens := make([]token.Token, len(lexemes))
	for i, lx := range lexemes {
		tokens[i] = lx.Token
	}
	return tokens
}

// ParseToJSON tokenizes text and returns the compact wire encoding.
func ParseToJSON(text string) (string, error) {
	tokens, err := Parse(text)
	if err != nil {
		return "", err
	}
	data, err := wire.Encode(tokens)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseToJSONIndent is ParseToJSON with indented output.
func ParseToJSONIndent(text, prefix, indent string) (string, error) {
	tokens, err := Parse(text)
	if err != nil {
		return "", err
	}
	data, err := wire.EncodeIndent(tokens, prefix, indent)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
