package util

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this module wraps exactly one of
// them, so callers can classify failures with errors.Is.
var (
	// ErrValidation reports invalid construction parameters.
	ErrValidation = errors.New("invalid parameters")
	// ErrDomain reports an operation that is undefined for its operands.
	ErrDomain = errors.New("undefined operation")
	// ErrUndetermined reports a computation that ran out of budget or lacks
	// the information it needs, as opposed to an invalid request.
	ErrUndetermined = errors.New("undetermined result")
	// ErrNotFound reports that a requested object does not exist.
	ErrNotFound = errors.New("not found")
)

var (
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", ErrValidation)
	ErrNoInverse       = fmt.Errorf("%w: no modular inverse", ErrDomain)
	ErrNotCoprime      = fmt.Errorf("%w: moduli are not coprime", ErrValidation)
)
