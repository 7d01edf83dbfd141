package store

import "errors"

// Sentinel errors for store operations.
var (
	ErrCapacityExceeded = errors.New("active task store is full")
	ErrOutOfRange       = errors.New("position out of range")
)
