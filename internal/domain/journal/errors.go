package journal

import "errors"

var (
	// ErrInvalidInput indicates an entry or filter that cannot be stored or applied.
	ErrInvalidInput = errors.New("invalid journal input")
)
