package parser

import (
	"fmt"

	"livingroom/internal/errors"
)

type Position = errors.Position

// ParseError is the single lexical failure kind. It carries the diagnostic
// that describes where and why scanning stopped.
type ParseError struct {
	errors.Diagnostic
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}
