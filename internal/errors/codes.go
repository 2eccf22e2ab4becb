package errors

// Diagnostic codes for the livingroom lexer and its encoders.
//
// Code ranges:
// E0100-E0199: Lexical errors
// E0200-E0299: Encoding errors
// E0300-E0399: Wire schema errors

const (
	// E0101: a character no token rule accepts
	ErrorUnexpectedCharacter = "E0101"

	// E0102: a string literal with no closing quote
	ErrorUnterminatedString = "E0102"

	// E0103: a numeral that does not fit a 64-bit value
	ErrorNumberOutOfRange = "E0103"

	// E0104: input that is not valid UTF-8
	ErrorInvalidEncoding = "E0104"

	// E0201: a token value JSON cannot represent (NaN, infinities)
	ErrorUnencodableValue = "E0201"

	// E0301: encoded output rejected by the wire schema
	ErrorSchemaViolation = "E0301"
)

// Description returns a short human readable description for an error code.
func Description(code string) string {
	switch code {
	case ErrorUnexpectedCharacter:
		return "unexpected character"
	case ErrorUnterminatedString:
		return "unterminated string literal"
	case ErrorNumberOutOfRange:
		return "number out of range"
	case ErrorInvalidEncoding:
		return "invalid UTF-8 input"
	case ErrorUnencodableValue:
		return "value cannot be encoded as JSON"
	case ErrorSchemaViolation:
		return "output does not match the wire schema"
	default:
		return "unknown error"
	}
}
