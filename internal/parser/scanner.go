package parser

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"livingroom/internal/errors"
	"livingroom/token"
)

// Lexeme is a token together with the source text it was scanned from.
type Lexeme struct {
	Token    token.Token
	Text     string // raw source text, quotes and sigils included
	Position Position
	Length   int // in runes
}

// Scanner turns one line of fact/pattern text into lexemes. A Scanner is
// used for a single scan; it holds no state shared with other scanners.
type Scanner struct {
	source      string
	lexemes     []Lexeme
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// ScanLexemes scans the whole input. The first lexical error aborts the
// scan and no lexemes are returned.
func (s *Scanner) ScanLexemes() ([]Lexeme, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	return s.lexemes, nil
}

func (s *Scanner) scanToken() *ParseError {
	if s.peekInvalid() {
		return s.errorAt(errors.InvalidEncoding(s.source[s.current], s.startPosition()))
	}

	c := s.peek()
	switch {
	case isWhitespace(c):
		s.scanWhitespace()
	case c == '#':
		s.advance()
		s.scanName()
		s.addToken(token.Id(s.source[s.start+1 : s.current]))
	case c == '$':
		s.advance()
		if isWordStart(s.peek()) {
			s.scanName()
			s.addToken(token.Variable(s.source[s.start+1 : s.current]))
		} else {
			s.addToken(token.Wildcard())
		}
	case c == '_':
		s.advance()
		s.addToken(token.Hole())
	case c == '"':
		return s.scanString()
	case s.numberAt(s.current):
		return s.scanNumber()
	case isWordChar(c):
		s.scanWord()
	default:
		s.advance()
		return s.errorAt(errors.UnexpectedCharacter(c, s.startPosition()))
	}
	return nil
}

func (s *Scanner) scanWhitespace() {
	for !s.isAtEnd() && isWhitespace(s.peek()) {
		s.advance()
	}
	s.addToken(token.Whitespace())
}

// scanName consumes the name following a '#' or '$' sigil.
func (s *Scanner) scanName() {
	for !s.isAtEnd() && !s.peekInvalid() && isNameChar(s.peek()) {
		s.advance()
	}
}

func (s *Scanner) scanString() *ParseError {
	s.advance() // opening quote
	for !s.isAtEnd() && s.peek() != '"' {
		if s.peekInvalid() {
			return s.errorAt(errors.InvalidEncoding(s.source[s.current], s.currentPosition()))
		}
		s.advance()
	}
	if s.isAtEnd() {
		length := utf8.RuneCountInString(s.source[s.start:s.current])
		return s.errorAt(errors.UnterminatedString(s.startPosition(), length))
	}
	s.advance() // closing quote
	s.addToken(token.String(s.source[s.start+1 : s.current-1]))
	return nil
}

// scanNumber is only entered when numberAt holds at the cursor, so the sign
// is always followed by a digit or by '.' and a digit.
func (s *Scanner) scanNumber() *ParseError {
	if c := s.peek(); c == '+' || c == '-' {
		s.advance()
	}
	for isDigit(s.peek()) {
		s.advance()
	}

	isFloat := false
	if s.peek() == '.' && isDigit(s.peekNext()) {
		isFloat = true
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	text := s.source[s.start:s.current]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return s.errorAt(errors.NumberOutOfRange(text, "float", s.startPosition(), len(text)))
		}
		s.addToken(token.Float(f))
		return nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return s.errorAt(errors.NumberOutOfRange(text, "integer", s.startPosition(), len(text)))
	}
	s.addToken(token.Int(i))
	return nil
}

// scanWord consumes the maximal word run. The first character is taken
// unconditionally: scanToken has already ruled out every other rule there.
func (s *Scanner) scanWord() {
	s.advance()
	for !s.isAtEnd() && !s.endsWord() {
		s.advance()
	}
	s.addToken(token.LookupWord(s.source[s.start:s.current]))
}

// endsWord reports whether the cursor is at a position where a word run
// stops. A '.' only stops a word when a digit follows it.
func (s *Scanner) endsWord() bool {
	if s.peekInvalid() {
		return true
	}
	c := s.peek()
	if isDelimiter(c) || !isWordChar(c) {
		return true
	}
	return s.numberAt(s.current)
}

// numberAt reports whether a numeral starts at byte offset i:
// an optional sign, then a digit, or '.' followed by a digit.
func (s *Scanner) numberAt(i int) bool {
	if i < len(s.source) && (s.source[i] == '+' || s.source[i] == '-') {
		i++
	}
	if i < len(s.source) && isDigit(rune(s.source[i])) {
		return true
	}
	return i+1 < len(s.source) && s.source[i] == '.' && isDigit(rune(s.source[i+1]))
}

func (s *Scanner) advance() rune {
	c, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += size
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	c, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return c
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+size >= len(s.source) {
		return 0
	}
	c, _ := utf8.DecodeRuneInString(s.source[s.current+size:])
	return c
}

// peekInvalid reports whether the byte at the cursor does not start a valid
// UTF-8 sequence.
func (s *Scanner) peekInvalid() bool {
	if s.isAtEnd() {
		return false
	}
	c, size := utf8.DecodeRuneInString(s.source[s.current:])
	return c == utf8.RuneError && size <= 1
}

func (s *Scanner) addToken(tok token.Token) {
	text := s.source[s.start:s.current]
	s.lexemes = append(s.lexemes, Lexeme{
		Token:    tok,
		Text:     text,
		Position: s.startPosition(),
		Length:   utf8.RuneCountInString(text),
	})
}

func (s *Scanner) startPosition() Position {
	return Position{Line: s.startLine, Column: s.startColumn, Offset: s.start}
}

func (s *Scanner) currentPosition() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.current}
}

func (s *Scanner) errorAt(d errors.Diagnostic) *ParseError {
	return &ParseError{Diagnostic: d}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isWhitespace(c rune) bool {
	return unicode.IsSpace(c)
}

// isDelimiter reports the characters that always start a token of their own.
func isDelimiter(c rune) bool {
	switch c {
	case '#', '$', '_', '"':
		return true
	}
	return isWhitespace(c)
}

// isWordChar reports whether c may appear in a word run at all.
func isWordChar(c rune) bool {
	return !isDelimiter(c) && !unicode.IsControl(c)
}

// isWordStart reports whether c may begin a variable name.
func isWordStart(c rune) bool {
	return unicode.IsLetter(c)
}

// isNameChar reports whether c continues an id or variable name. '_' is
// excluded: it is always a Hole of its own.
func isNameChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}
