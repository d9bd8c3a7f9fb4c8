package clock

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
)

// ErrNoEntry is returned by Lookup when no entry point is registered under a
// name, which is how platform-conditional primitives report their absence.
var ErrNoEntry = errors.New("clock: no such entry point")

// Entry point names, as accepted by Lookup.
const (
	EntryNow            = "Calendar.Now"
	EntryUTCNow         = "Calendar.UTCNow"
	EntryClockGettime   = "ClockGettime"
	EntryClockGettimeNS = "ClockGettimeNS"
	EntryGmtime         = "Gmtime"
	EntryLocaltime      = "Localtime"
	EntryMonotonic      = "Monotonic"
	EntryMonotonicNS    = "MonotonicNS"
	EntryStrftime       = "Strftime"
	EntryTime           = "Time"
	EntryTimeNS         = "TimeNS"
)

// Entry is the dispatch slot behind one time primitive. The exported
// functions of this package always call whatever implementation the slot
// currently holds.
type Entry[F any] struct {
	name string
	fn   atomic.Pointer[F]
}

// entries is written during package initialization only.
var entries = map[string]any{}

func newEntry[F any](name string, native F) *Entry[F] {
	e := NewEntry(name, native)
	entries[name] = e
	return e
}

// NewEntry returns a slot holding fn that is not reachable through Lookup.
// It lets callers build dispatch tables of their own.
func NewEntry[F any](name string, fn F) *Entry[F] {
	e := &Entry[F]{name: name}
	e.fn.Store(&fn)
	return e
}

// Name returns the name the entry is registered under.
func (e *Entry[F]) Name() string { return e.name }

// Load returns the implementation currently installed in the slot.
func (e *Entry[F]) Load() F { return *e.fn.Load() }

// Store installs fn in the slot.
func (e *Entry[F]) Store(fn F) { e.fn.Store(&fn) }

// Lookup returns the *Entry registered under name. Callers type-assert the
// result to the Entry type matching the primitive's signature.
func Lookup(name string) (any, error) {
	e, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEntry, name)
	}
	return e, nil
}

// Names lists the entry points registered on this platform.
func Names() []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
