package timemachine

import (
	"sync/atomic"
	"time"

	"github.com/dhima/time-machine/pkg/clock"
)

// Policy decides what the intercepted entry points report. Each method
// mirrors the entry point of the same name in package clock and receives
// the caller's arguments unchanged.
type Policy interface {
	Now(opts ...clock.NowOption) time.Time
	UTCNow() time.Time
	ClockGettime(id clock.ClockID) (float64, error)
	ClockGettimeNS(id clock.ClockID) (int64, error)
	Gmtime(secs ...float64) (clock.StructTime, error)
	Localtime(secs ...float64) (clock.StructTime, error)
	Monotonic() float64
	MonotonicNS() int64
	Strftime(format string, t ...clock.StructTime) (string, error)
	Time() float64
	TimeNS() int64
}

type policyHolder struct {
	policy Policy
}

var currentPolicy atomic.Pointer[policyHolder]

// SetPolicy makes p the policy consulted by redirect shims and returns the
// previous one. A nil p clears it.
func SetPolicy(p Policy) Policy {
	var next *policyHolder
	if p != nil {
		next = &policyHolder{policy: p}
	}
	prev := currentPolicy.Swap(next)
	if prev == nil {
		return nil
	}
	return prev.policy
}

// CurrentPolicy returns the policy set with SetPolicy, or
// ErrPolicyUnavailable.
func CurrentPolicy() (Policy, error) {
	h := currentPolicy.Load()
	if h == nil {
		return nil, ErrPolicyUnavailable
	}
	return h.policy, nil
}
