// Package errors provides custom error types for inventory operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidField = errors.New("invalid field")
var ErrInvalidValue = errors.New("invalid value")
var ErrIO = errors.New("inventory file i/o failed")
var ErrParse = errors.New("malformed inventory file")

// ParseError reports a row of the inventory file that could not be decoded.
// Row counts data rows from 1; the header is not counted.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("row %d: column %q: %v", e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("row %d: column %q: value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
