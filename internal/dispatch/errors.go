package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMismatch reports that the bound platform differs from the profile.
	ErrConfigMismatch = errors.New("configuration mismatch")
	// ErrUnsupported is matched by every *UnsupportedError.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrUnknownOperation reports a name the registry does not hold.
	ErrUnknownOperation = errors.New("unknown operation")
)

// UnsupportedError is returned by operations the board cannot perform.
// Its text is exactly the profile's message.
type UnsupportedError struct {
	Operation string
	Message   string
}

func (e *UnsupportedError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrUnsupported) hold.
func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// ExitError carries the non-zero exit status of a spawned tool or delegate.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}
