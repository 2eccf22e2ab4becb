// Package wire encodes token sequences into the JSON wire format: an array
// of objects with exactly one key each, in token order.
//
// The format carries no variant tag. Each kind is mapped through an explicit
// table to a key and a value, and numbers keep their kind by the presence of
// a decimal point: Int values never have one, Float values always do.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"livingroom/token"
)

type Key string

const (
	KeyHole     Key = "hole"
	KeyID       Key = "id"
	KeyValue    Key = "value"
	KeyVariable Key = "variable"
	KeyWildcard Key = "wildcard"
	KeyWord     Key = "word"
)

// EncodeError is returned when a token cannot be represented on the wire.
type EncodeError struct {
	Token  token.Token
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot encode %s: %s", e.Token, e.Reason)
}

type entry struct {
	key   Key
	value func(tok token.Token) (string, error)
}

var table = [...]entry{
	token.BOOL:       {KeyValue, boolValue},
	token.FLOAT:      {KeyValue, floatValue},
	token.HOLE:       {KeyHole, literal("true")},
	token.ID:         {KeyID, textValue},
	token.INT:        {KeyValue, intValue},
	token.NULL:       {KeyValue, literal("null")},
	token.STRING:     {KeyValue, textValue},
	token.VARIABLE:   {KeyVariable, textValue},
	token.WHITESPACE: {KeyWord, literal(`" "`)},
	token.WILDCARD:   {KeyWildcard, literal("true")},
	token.WORD:       {KeyWord, textValue},
}

// KeyOf returns the wire key a token kind is encoded under.
func KeyOf(kind token.Kind) (Key, bool) {
	if kind < 0 || int(kind) >= len(table) {
		return "", false
	}
	return table[kind].key, true
}

// Encode returns the compact JSON array for tokens.
func Encode(tokens []token.Token) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, tok := range tokens {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeObject(&buf, tok); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// EncodeIndent is like Encode but indents the output like json.MarshalIndent.
func EncodeIndent(tokens []token.Token, prefix, indent string) ([]byte, error) {
	data, err := Encode(tokens)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal returns the single-key object for one token.
func Marshal(tok token.Token) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeObject(&buf, tok); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeObject(buf *bytes.Buffer, tok token.Token) error {
	if tok.Kind < 0 || int(tok.Kind) >= len(table) {
		return &EncodeError{Token: tok, Reason: "unknown token kind"}
	}
	e := table[tok.Kind]
	value, err := e.value(tok)
	if err != nil {
		return err
	}
	buf.WriteString(`{"`)
	buf.WriteString(string(e.key))
	buf.WriteString(`":`)
	buf.WriteString(value)
	buf.WriteByte('}')
	return nil
}

func literal(text string) func(token.Token) (string, error) {
	return func(token.Token) (string, error) { return text, nil }
}

func boolValue(tok token.Token) (string, error) {
	return strconv.FormatBool(tok.Bool), nil
}

func intValue(tok token.Token) (string, error) {
	return strconv.FormatInt(tok.Int, 10), nil
}

func floatValue(tok token.Token) (string, error) {
	if math.IsNaN(tok.Float) || math.IsInf(tok.Float, 0) {
		return "", &EncodeError{Token: tok, Reason: "JSON has no representation for this value"}
	}
	return formatFloat(tok.Float), nil
}

// formatFloat uses the same cutoffs as encoding/json for switching to
// exponent notation, and always leaves a '.' in the mantissa.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if sign == "+" {
			sign = ""
		}
		return mantissa + "e" + sign + digits
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func textValue(tok token.Token) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tok.Text); err != nil {
		return "", &EncodeError{Token: tok, Reason: err.Error()}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
