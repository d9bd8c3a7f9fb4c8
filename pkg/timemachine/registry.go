package timemachine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dhima/time-machine/pkg/clock"
)

// CallShape describes how an operation is called.
type CallShape int

const (
	// ShapeNoArgs takes no arguments.
	ShapeNoArgs CallShape = iota
	// ShapeOneArg takes exactly one argument.
	ShapeOneArg
	// ShapeVariadic takes optional trailing arguments.
	ShapeVariadic
	// ShapeKeywords takes the bound calendar as receiver plus options.
	ShapeKeywords
)

func (s CallShape) String() string {
	switch s {
	case ShapeNoArgs:
		return "no-args"
	case ShapeOneArg:
		return "one-arg"
	case ShapeVariadic:
		return "variadic"
	case ShapeKeywords:
		return "keywords"
	default:
		return fmt.Sprintf("CallShape(%d)", int(s))
	}
}

// Descriptor describes one interceptable operation.
type Descriptor struct {
	Name     string
	Shape    CallShape
	Optional bool
	// Available is resolved once, when the interceptor is built.
	Available bool
}

// Resolver locates the dispatch entry registered under a name. It returns
// an error wrapping clock.ErrNoEntry when the entry does not exist.
type Resolver interface {
	Resolve(name string) (any, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(name string) (any, error)

func (f ResolverFunc) Resolve(name string) (any, error) {
	return f(name)
}

// DefaultResolver resolves names through clock.Lookup.
func DefaultResolver() Resolver {
	return ResolverFunc(clock.Lookup)
}

// operation is the type-erased view of a binding the controller iterates over.
type operation interface {
	descriptor() Descriptor
	// prepare resolves and captures the operation without touching its
	// slot. The returned commit installs the shim.
	prepare(r Resolver) (commit func(), err error)
	// restore puts the captured original back and forgets it. It reports
	// whether anything was captured.
	restore() bool
	redirectCount() uint64
	setAvailable(available bool)
}

// binding ties one operation to its slot, its shim and its captured
// original.
type binding[F any] struct {
	desc      Descriptor
	shim      F
	entry     *clock.Entry[F]
	original  atomic.Pointer[F]
	redirects atomic.Uint64
}

func newBinding[F any](name string, shape CallShape, optional bool) *binding[F] {
	return &binding[F]{desc: Descriptor{Name: name, Shape: shape, Optional: optional}}
}

func (b *binding[F]) descriptor() Descriptor {
	return b.desc
}

func (b *binding[F]) setAvailable(available bool) {
	b.desc.Available = available
}

// resolve looks the operation up. Absence of an optional operation is
// reported as ErrNotAvailable; anything else is a hard error.
func (b *binding[F]) resolve(r Resolver) (*clock.Entry[F], error) {
	v, err := r.Resolve(b.desc.Name)
	if err != nil {
		if b.desc.Optional && errors.Is(err, clock.ErrNoEntry) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}
	entry, ok := v.(*clock.Entry[F])
	if !ok || entry == nil {
		var want *clock.Entry[F]
		return nil, fmt.Errorf("entry has type %T, want %T", v, want)
	}
	return entry, nil
}

func (b *binding[F]) prepare(r Resolver) (func(), error) {
	entry, err := b.resolve(r)
	if err != nil {
		return nil, err
	}
	original := entry.Load()
	return func() {
		b.entry = entry
		b.original.Store(&original)
		entry.Store(b.shim)
	}, nil
}

func (b *binding[F]) restore() bool {
	original := b.original.Load()
	if original == nil || b.entry == nil {
		return false
	}
	b.entry.Store(*original)
	b.original.Store(nil)
	b.entry = nil
	return true
}

func (b *binding[F]) redirectCount() uint64 {
	return b.redirects.Load()
}

// captured returns the function that was installed before Patch, or ErrNotIntercepting.
func (b *binding[F]) captured() (F, error) {
	original := b.original.Load()
	if original == nil {
		var zero F
		return zero, fmt.Errorf("%s: %w", b.desc.Name, ErrNotIntercepting)
	}
	return *original, nil
}
