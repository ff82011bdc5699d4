package graphics

import (
	"errors"
	"fmt"
)

var (
	// ErrBackend matches every BackendError via errors.Is.
	ErrBackend = errors.New("graphics: backend failure")

	// ErrNilTarget is returned by New when no target is given.
	ErrNilTarget = errors.New("graphics: nil target")
)

// BackendError records the first device failure seen by a Graphics.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("graphics: %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBackend) hold for any BackendError.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
