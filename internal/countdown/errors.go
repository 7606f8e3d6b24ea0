package countdown

import (
	"errors"
	"fmt"
)

// ErrInvalidDuration is returned when a timer would start at 0:00.
var ErrInvalidDuration = errors.New("invalid countdown duration")

// DurationError records the rejected starting duration.
type DurationError struct {
	Minutes int
	Seconds int
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("countdown can't start from %d minutes %d seconds: %v", e.Minutes, e.Seconds, ErrInvalidDuration)
}

func (e *DurationError) Unwrap() error {
	return ErrInvalidDuration
}
