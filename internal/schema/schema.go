// Package schema checks encoded token arrays against the CUE definition of
// the wire format.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed wire.cue
var source string

// Validator holds a compiled schema. It is safe for concurrent use.
type Validator struct {
	mu    sync.Mutex
	ctx   *cue.Context
	terms cue.Value
}

// New compiles the wire schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(source, cue.Filename("wire.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile wire schema: %w", err)
	}
	terms := v.LookupPath(cue.ParsePath("#Terms"))
	if err := terms.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Terms: %w", err)
	}
	return &Validator{ctx: ctx, terms: terms}, nil
}

// Validate reports whether data is a wire array: a JSON array whose elements
// each carry exactly one of the keys hole, id, value, variable, wildcard or
// word, with a value of the matching type.
func (v *Validator) Validate(data []byte) error {
	// cue.Context is not safe for concurrent use.
	v.mu.Lock()
	defer v.mu.Unlock()

	doc := v.ctx.CompileBytes(data, cue.Filename("wire.json"))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("read wire output: %w", err)
	}
	if err := v.terms.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &Error{Err: err}
	}
	return nil
}

// Error is returned by Validate when the output does not match the schema.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "wire schema: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Validate checks data against a validator compiled on first use.
func Validate(data []byte) error {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New()
	})
	if defaultErr != nil {
		return defaultErr
	}
	return defaultValidator.Validate(data)
}
