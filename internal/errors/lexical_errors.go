package errors

import (
	"fmt"
	"unicode"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	err Diagnostic
}

// NewError creates a new error builder
func NewError(code, message string, pos Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: Diagnostic{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.err
}

// UnexpectedCharacter reports a character that no token rule accepts.
func UnexpectedCharacter(r rune, pos Position) Diagnostic {
	b := NewError(ErrorUnexpectedCharacter,
		fmt.Sprintf("unexpected character %q", r), pos)
	if unicode.IsControl(r) {
		b.WithNote(fmt.Sprintf("U+%04X is a control character", r))
	}
	return b.WithHelp("remove the character or put it inside a \"string\"").Build()
}

// UnterminatedString reports a string literal that runs to the end of input.
// The span covers the opening quote and everything after it.
func UnterminatedString(pos Position, length int) Diagnostic {
	return NewError(ErrorUnterminatedString, "unterminated string literal", pos).
		WithLength(length).
		WithNote("string literals are not escaped; the first following '\"' closes them").
		WithHelp("add a closing '\"'").
		Build()
}

// NumberOutOfRange reports a numeral that does not fit its 64-bit kind.
func NumberOutOfRange(text, kind string, pos Position, length int) Diagnostic {
	return NewError(ErrorNumberOutOfRange,
		fmt.Sprintf("number %s does not fit in a 64-bit %s", text, kind), pos).
		WithLength(length).
		Build()
}

// InvalidEncoding reports a byte sequence that is not valid UTF-8.
func InvalidEncoding(b byte, pos Position) Diagnostic {
	return NewError(ErrorInvalidEncoding,
		fmt.Sprintf("invalid UTF-8 byte 0x%02x", b), pos).
		Build()
}
