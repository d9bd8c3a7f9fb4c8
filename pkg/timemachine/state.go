package timemachine

import (
	"errors"
	"sync/atomic"

	"github.com/dhima/time-machine/pkg/clock"
	"go.uber.org/zap"
)

// Interceptor owns the interception state of one dispatch table: for every
// operation the captured original (or none) and whether the redirect shims
// are installed.
type Interceptor struct {
	resolver  Resolver
	installed atomic.Bool

	now            *binding[clock.NowFunc]
	utcNow         *binding[clock.UTCNowFunc]
	clockGettime   *binding[clock.ClockGettimeFunc]
	clockGettimeNS *binding[clock.ClockGettimeNSFunc]
	gmtime         *binding[clock.GmtimeFunc]
	localtime      *binding[clock.LocaltimeFunc]
	monotonic      *binding[clock.MonotonicFunc]
	monotonicNS    *binding[clock.MonotonicNSFunc]
	strftime       *binding[clock.StrftimeFunc]
	time           *binding[clock.TimeFunc]
	timeNS         *binding[clock.TimeNSFunc]

	ops []operation
}

// std intercepts the entry points of package clock. There is exactly one
// per process.
var std = newInterceptor(DefaultResolver())

// Default returns the process-wide interceptor behind the package-level
// functions.
func Default() *Interceptor {
	return std
}

func newInterceptor(r Resolver) *Interceptor {
	i := &Interceptor{
		resolver:       r,
		now:            newBinding[clock.NowFunc](clock.EntryNow, ShapeKeywords, false),
		utcNow:         newBinding[clock.UTCNowFunc](clock.EntryUTCNow, ShapeNoArgs, false),
		clockGettime:   newBinding[clock.ClockGettimeFunc](clock.EntryClockGettime, ShapeOneArg, true),
		clockGettimeNS: newBinding[clock.ClockGettimeNSFunc](clock.EntryClockGettimeNS, ShapeOneArg, true),
		gmtime:         newBinding[clock.GmtimeFunc](clock.EntryGmtime, ShapeVariadic, false),
		localtime:      newBinding[clock.LocaltimeFunc](clock.EntryLocaltime, ShapeVariadic, false),
		monotonic:      newBinding[clock.MonotonicFunc](clock.EntryMonotonic, ShapeNoArgs, false),
		monotonicNS:    newBinding[clock.MonotonicNSFunc](clock.EntryMonotonicNS, ShapeNoArgs, false),
		strftime:       newBinding[clock.StrftimeFunc](clock.EntryStrftime, ShapeVariadic, false),
		time:           newBinding[clock.TimeFunc](clock.EntryTime, ShapeNoArgs, false),
		timeNS:         newBinding[clock.TimeNSFunc](clock.EntryTimeNS, ShapeNoArgs, false),
	}

	i.now.shim = i.redirectNow
	i.utcNow.shim = i.redirectUTCNow
	i.clockGettime.shim = i.redirectClockGettime
	i.clockGettimeNS.shim = i.redirectClockGettimeNS
	i.gmtime.shim = i.redirectGmtime
	i.localtime.shim = i.redirectLocaltime
	i.monotonic.shim = i.redirectMonotonic
	i.monotonicNS.shim = i.redirectMonotonicNS
	i.strftime.shim = i.redirectStrftime
	i.time.shim = i.redirectTime
	i.timeNS.shim = i.redirectTimeNS

	i.ops = []operation{
		i.now, i.utcNow, i.clockGettime, i.clockGettimeNS, i.gmtime, i.localtime,
		i.monotonic, i.monotonicNS, i.strftime, i.time, i.timeNS,
	}

	i.resolveAvailability()
	return i
}

// resolveAvailability marks optional operations missing from the resolver as
// unavailable. Mandatory operations stay available so that a broken lookup
// surfaces from Patch.
func (i *Interceptor) resolveAvailability() {
	for _, op := range i.ops {
		op.setAvailable(true)
		desc := op.descriptor()
		if !desc.Optional {
			continue
		}
		if _, err := i.resolver.Resolve(desc.Name); errors.Is(err, clock.ErrNoEntry) {
			op.setAvailable(false)
		}
	}
}

// Descriptors lists the interceptable operations in registry order.
func (i *Interceptor) Descriptors() []Descriptor {
	out := make([]Descriptor, len(i.ops))
	for n, op := range i.ops {
		out[n] = op.descriptor()
	}
	return out
}

// IsPatched reports whether the redirect shims are installed.
func (i *Interceptor) IsPatched() bool {
	return i.installed.Load()
}

// Stats is a snapshot of the interception state.
type Stats struct {
	Patched bool
	// Redirects counts calls that reached a redirect shim, per operation.
	Redirects map[string]uint64
}

// Stats returns a snapshot of the interception state.
func (i *Interceptor) Stats() Stats {
	s := Stats{Patched: i.installed.Load(), Redirects: make(map[string]uint64, len(i.ops))}
	for _, op := range i.ops {
		s.Redirects[op.descriptor().Name] = op.redirectCount()
	}
	return s
}

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger sets the logger used for interception lifecycle events. A nil
// l discards them.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func log() *zap.Logger {
	return logger.Load()
}
