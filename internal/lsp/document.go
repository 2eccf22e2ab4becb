package lsp

import (
	stderrors "errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"livingroom/grammar"
	"livingroom/internal/parser"
)

// line is one statement of a document, scanned on its own.
type line struct {
	text      string
	lexemes   []parser.Lexeme
	statement *grammar.Statement
	err       *parser.ParseError
}

// document holds the analysis of every line of an open file. Each line is a
// separate fact or pattern, so an error on one line leaves the others intact.
type document struct {
	lines []line
}

func analyze(content string) *document {
	raw := strings.Split(content, "\n")
	doc := &document{lines: make([]line, len(raw))}
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		doc.lines[i] = analyzeLine(text)
	}
	return doc
}

func analyzeLine(text string) line {
	l := line{text: text}
	lexemes, err := parser.NewScanner(text).ScanLexemes()
	if err != nil {
		stderrors.As(err, &l.err)
		return l
	}
	l.lexemes = lexemes
	if stmt, err := grammar.ParseLexemes("", text, lexemes); err == nil {
		l.statement = stmt
	}
	return l
}

// lexemeAt returns the lexeme under a UTF-16 character offset of line n.
func (d *document) lexemeAt(n int, character uint32) (*line, *parser.Lexeme) {
	if n < 0 || n >= len(d.lines) {
		return nil, nil
	}
	l := &d.lines[n]
	for i := range l.lexemes {
		lx := &l.lexemes[i]
		start := utf16Len(l.text[:lx.Position.Offset])
		if character >= start && character < start+utf16Len(lx.Text) {
			return l, lx
		}
	}
	return l, nil
}

// utf16Len is the length of s in UTF-16 code units, the unit LSP positions
// are counted in.
func utf16Len(s string) uint32 {
	var n uint32
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if l := utf16.RuneLen(r); l > 0 {
			n += uint32(l)
		} else {
			n++
		}
	}
	return n
}
