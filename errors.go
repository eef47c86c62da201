package bloom

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidParameter is returned for non-positive sizes or an out of range false-positive rate
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrTruncatedData is returned when a payload is too short for the declared bit count
	ErrTruncatedData = errors.New("truncated data")
	// ErrMissingResource is returned when a sidecar or payload is absent or unreadable
	ErrMissingResource = errors.New("missing resource")
)
