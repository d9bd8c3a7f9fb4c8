package travel

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDestination is wrapped by a DestinationError whose value
	// has a type travel cannot turn into an instant.
	ErrUnsupportedDestination = errors.New("travel: unsupported destination")

	// ErrNaiveDestination is wrapped by a DestinationError for a string
	// without a zone while the naive mode is NaiveError.
	ErrNaiveDestination = errors.New("travel: naive destination while naive mode is error")

	// ErrUnsupportedDelta is returned by Shift for a delta of the wrong type.
	ErrUnsupportedDelta = errors.New("travel: unsupported shift delta")

	// ErrNotTravelling is returned by Stop when no traveller is running.
	ErrNotTravelling = errors.New("travel: not travelling")
)

// DestinationError reports a destination that could not be resolved.
type DestinationError struct {
	Destination any
	Err         error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("travel: destination %v (%T): %v", e.Destination, e.Destination, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}
