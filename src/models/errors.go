package models

import (
	"errors"
	"fmt"
)

// Client-facing messages are part of the HTTP contract; keep them literal.
var (
	ErrInvalidSource = errors.New("Invalid source")
	ErrNotFound      = errors.New("CSV not found")
	ErrMalformedData = errors.New("malformed data")
	ErrEmptySeries   = errors.New("empty series")
	ErrInvalidWindow = errors.New("days must be greater than 0")
)

func NewInvalidSourceError(source Source) error {
	return fmt.Errorf("%w '%s'", ErrInvalidSource, source)
}
