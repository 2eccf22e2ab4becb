package lsp

import (
	"livingroom/token"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// kindTypes maps token kinds to legend entries. Words and whitespace are
// left to the editor's default colouring.
var kindTypes = map[token.Kind]string{
	token.ID:       "namespace",
	token.VARIABLE: "variable",
	token.WILDCARD: "operator",
	token.HOLE:     "operator",
	token.BOOL:     "keyword",
	token.NULL:     "keyword",
	token.INT:      "number",
	token.FLOAT:    "number",
	token.STRING:   "string",
}

func collectSemanticTokens(doc *document) []SemanticToken {
	var tokens []SemanticToken

	for n, l := range doc.lines {
		// the first use of a variable on a line binds it
		bound := make(map[string]bool)

		for _, lx := range l.lexemes {
			tokenType, ok := kindTypes[lx.Token.Kind]
			if !ok {
				continue
			}

			modifiers := 0
			if lx.Token.Kind == token.VARIABLE && !bound[lx.Token.Text] {
				bound[lx.Token.Text] = true
				modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
			}

			tokens = append(tokens, SemanticToken{
				Line:           uint32(n),
				StartChar:      utf16Len(l.text[:lx.Position.Offset]),
				Length:         utf16Len(lx.Text),
				TokenType:      indexOf(tokenType, SemanticTokenTypes),
				TokenModifiers: modifiers,
			})
		}
	}

	return tokens
}

// encodeSemanticTokens packs tokens into the LSP relative encoding.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		} else {
			deltaStart = tok.StartChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
