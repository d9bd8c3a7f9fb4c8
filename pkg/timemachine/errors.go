package timemachine

import (
	"errors"
	"fmt"
)

var (
	// ErrPolicyUnavailable is reported by a redirect shim when no Policy is set.
	ErrPolicyUnavailable = errors.New("timemachine: no virtual clock policy is set")

	// ErrNotAvailable marks an optional operation this platform does not
	// provide. Patch and Unpatch skip such operations; it is never returned
	// to their callers.
	ErrNotAvailable = errors.New("timemachine: operation not available on this platform")

	// ErrNotIntercepting is returned by the Original* forwarders when the
	// operation has no captured original, i.e. outside Patch/Unpatch.
	ErrNotIntercepting = errors.New("timemachine: not currently intercepting")
)

// PatchError reports an operation that could not be captured. When Patch
// returns one, no dispatch slot has been modified.
type PatchError struct {
	Op  string
	Err error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("timemachine: patching %s: %v", e.Op, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}
