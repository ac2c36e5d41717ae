package dto

import "errors"

// ErrInvalidInput marks a precondition violation (missing columns, non-positive
// price, NaN-only indicator data). It is fatal to the call and never retried.
var ErrInvalidInput = errors.New("invalid input")
