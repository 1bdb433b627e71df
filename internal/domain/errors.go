package domain

import "errors"

// ErrInvalidInput marks validation failures: non-positive coverage, unknown
// policy types, out-of-domain profile values. Callers test with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound is returned by stores when a profile does not exist.
var ErrNotFound = errors.New("not found")
