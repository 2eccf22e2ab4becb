package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"livingroom/token"
)

// Decode reads a wire array back into tokens. A {"word":" "} object becomes
// Whitespace, since the lexer never produces a word containing whitespace.
// Numbers with a '.' or an exponent decode as Float, all others as Int.
func Decode(data []byte) ([]token.Token, error) {
	var objects []map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode wire array: %w", err)
	}

	tokens := make([]token.Token, 0, len(objects))
	for i, obj := range objects {
		if len(obj) != 1 {
			return nil, fmt.Errorf("element %d: expected exactly one key, got %d", i, len(obj))
		}
		for key, raw := range obj {
			tok, err := decodeEntry(Key(key), raw)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func decodeEntry(key Key, raw json.RawMessage) (token.Token, error) {
	switch key {
	case KeyHole:
		return token.Hole(), expectTrue(key, raw)
	case KeyWildcard:
		return token.Wildcard(), expectTrue(key, raw)
	case KeyID:
		s, err := decodeString(key, raw)
		return token.Id(s), err
	case KeyVariable:
		s, err := decodeString(key, raw)
		return token.Variable(s), err
	case KeyWord:
		s, err := decodeString(key, raw)
		if s == " " {
			return token.Whitespace(), err
		}
		return token.Word(s), err
	case KeyValue:
		return decodeValue(raw)
	default:
		return token.Token{}, fmt.Errorf("unknown key %q", key)
	}
}

func decodeValue(raw json.RawMessage) (token.Token, error) {
	text := strings.TrimSpace(string(raw))
	switch {
	case text == "null":
		return token.Null(), nil
	case text == "true":
		return token.Bool(true), nil
	case text == "false":
		return token.Bool(false), nil
	case strings.HasPrefix(text, `"`):
		s, err := decodeString(KeyValue, raw)
		return token.String(s), err
	case strings.ContainsAny(text, ".eE"):
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, fmt.Errorf("value %s: %w", text, err)
		}
		return token.Float(f), nil
	default:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return token.Token{}, fmt.Errorf("value %s: %w", text, err)
		}
		return token.Int(i), nil
	}
}

func decodeString(key Key, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s: expected a string: %w", key, err)
	}
	return s, nil
}

func expectTrue(key Key, raw json.RawMessage) error {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil || !b {
		return fmt.Errorf("%s: expected true, got %s", key, raw)
	}
	return nil
}
