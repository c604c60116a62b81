package bank

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for bank files written for another
// major format version.
var ErrUnsupportedFormat = errors.New("unsupported bank format")

// ValidationError reports a bank document that does not match the bank
// schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid bank: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
