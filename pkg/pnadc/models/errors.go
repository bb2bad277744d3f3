package models

import "fmt"

// CoercionError represents a value that could not be converted to its
// expected type during codebook extraction or fixed-width parsing.
type CoercionError struct {
	Field string // column or variable name in the source file
	Row   int    // 1-based row number in the source file
	Value string // the offending raw value
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %q in field %q (row %d): %v", e.Value, e.Field, e.Row, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// NewCoercionError creates a new CoercionError.
func NewCoercionError(field string, row int, value string, err error) *CoercionError {
	return &CoercionError{
		Field: field,
		Row:   row,
		Value: value,
		Err:   err,
	}
}
