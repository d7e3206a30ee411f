package capture

import (
	"errors"
	"fmt"
)

// ErrCapture is matched by every *Error via errors.Is.
var ErrCapture = errors.New("capture failed")

// Error reports a failed grab of a region. It ends a monitoring session.
type Error struct {
	Region Region
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("capture: %s: region %s", e.Reason, e.Region)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrCapture) match any capture error.
func (e *Error) Is(target error) bool { return target == ErrCapture }
