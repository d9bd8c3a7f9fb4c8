package timemachine

import (
	"fmt"
	"time"

	"github.com/dhima/time-machine/pkg/clock"
)

// The redirect shims below are what Patch installs. Each one looks the
// policy up on every call and hands it the caller's arguments unchanged.
// Shims whose entry point cannot report an error panic with an error
// wrapping ErrPolicyUnavailable when no policy is set.

func policyFor(op string) (Policy, error) {
	p, err := CurrentPolicy()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func mustPolicy(op string) Policy {
	p, err := policyFor(op)
	if err != nil {
		panic(err)
	}
	return p
}

func (i *Interceptor) redirectNow(_ *clock.Calendar, opts ...clock.NowOption) time.Time {
	i.now.redirects.Add(1)
	return mustPolicy(clock.EntryNow).Now(opts...)
}

func (i *Interceptor) redirectUTCNow(*clock.Calendar) time.Time {
	i.utcNow.redirects.Add(1)
	return mustPolicy(clock.EntryUTCNow).UTCNow()
}

func (i *Interceptor) redirectClockGettime(id clock.ClockID) (float64, error) {
	i.clockGettime.redirects.Add(1)
	p, err := policyFor(clock.EntryClockGettime)
	if err != nil {
		return 0, err
	}
	return p.ClockGettime(id)
}

func (i *Interceptor) redirectClockGettimeNS(id clock.ClockID) (int64, error) {
	i.clockGettimeNS.redirects.Add(1)
	p, err := policyFor(clock.EntryClockGettimeNS)
	if err != nil {
		return 0, err
	}
	return p.ClockGettimeNS(id)
}

func (i *Interceptor) redirectGmtime(secs ...float64) (clock.StructTime, error) {
	i.gmtime.redirects.Add(1)
	p, err := policyFor(clock.EntryGmtime)
	if err != nil {
		return clock.StructTime{}, err
	}
	return p.Gmtime(secs...)
}

func (i *Interceptor) redirectLocaltime(secs ...float64) (clock.StructTime, error) {
	i.localtime.redirects.Add(1)
	p, err := policyFor(clock.EntryLocaltime)
	if err != nil {
		return clock.StructTime{}, err
	}
	return p.Localtime(secs...)
}

func (i *Interceptor) redirectMonotonic() float64 {
	i.monotonic.redirects.Add(1)
	return mustPolicy(clock.EntryMonotonic).Monotonic()
}

func (i *Interceptor) redirectMonotonicNS() int64 {
	i.monotonicNS.redirects.Add(1)
	return mustPolicy(clock.EntryMonotonicNS).MonotonicNS()
}

func (i *Interceptor) redirectStrftime(format string, t ...clock.StructTime) (string, error) {
	i.strftime.redirects.Add(1)
	p, err := policyFor(clock.EntryStrftime)
	if err != nil {
		return "", err
	}
	return p.Strftime(format, t...)
}

func (i *Interceptor) redirectTime() float64 {
	i.time.redirects.Add(1)
	return mustPolicy(clock.EntryTime).Time()
}

func (i *Interceptor) redirectTimeNS() int64 {
	i.timeNS.redirects.Add(1)
	return mustPolicy(clock.EntryTimeNS).TimeNS()
}
