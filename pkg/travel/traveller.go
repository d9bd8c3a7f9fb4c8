package travel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dhima/time-machine/pkg/clock"
	"github.com/dhima/time-machine/pkg/timemachine"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Traveller is one running trip: the virtual instant it reports and
// whether that instant advances with real time.
type Traveller struct {
	id string

	mu          sync.Mutex
	destNS      int64
	loc         *time.Location
	tick        bool
	requested   bool
	realStartNS int64
	prevLocal   *time.Location
}

func newTraveller(dest destination, tick bool) *Traveller {
	return &Traveller{
		id:     uuid.NewString(),
		destNS: dest.ns,
		loc:    dest.loc,
		tick:   tick,
	}
}

// ID identifies the traveller in logs and in the control API.
func (t *Traveller) ID() string {
	return t.id
}

// Time returns the virtual time in seconds since the Unix epoch.
func (t *Traveller) Time() float64 {
	return float64(t.TimeNS()) / float64(time.Second)
}

// TimeNS returns the virtual time in nanoseconds since the Unix epoch. A
// ticking traveller starts advancing from its first query.
func (t *Traveller) TimeNS() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.tick {
		return t.destNS
	}
	now := realTimeNS()
	if !t.requested {
		t.requested = true
		t.realStartNS = now
		return t.destNS
	}
	return t.destNS + (now - t.realStartNS)
}

// Shift moves the traveller by delta: a time.Duration, or seconds as an
// int, int64 or float64.
func (t *Traveller) Shift(delta any) error {
	var ns int64
	switch d := delta.(type) {
	case time.Duration:
		ns = int64(d)
	case int:
		ns = int64(d) * int64(time.Second)
	case int64:
		ns = d * int64(time.Second)
	case float64:
		ns = int64(d * float64(time.Second))
	default:
		return fmt.Errorf("%w: %v (%T)", ErrUnsupportedDelta, delta, delta)
	}

	t.mu.Lock()
	t.destNS += ns
	t.mu.Unlock()

	log().Debug("traveller shifted", zap.String("traveller_id", t.id), zap.Duration("delta", time.Duration(ns)))
	return nil
}

// MoveTo sends the traveller to dest. Ticking restarts from the next query.
// A nil tick keeps the current setting.
func (t *Traveller) MoveTo(dest any, tick *bool) error {
	d, err := resolve(dest)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.leaveZone()
	t.destNS = d.ns
	t.loc = d.loc
	t.requested = false
	t.enterZone()
	if tick != nil {
		t.tick = *tick
	}

	log().Debug("traveller moved",
		zap.String("traveller_id", t.id),
		zap.Time("destination", time.Unix(0, d.ns).UTC()),
		zap.Bool("tick", t.tick),
	)
	return nil
}

func (t *Traveller) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enterZone()
}

func (t *Traveller) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leaveZone()
}

// enterZone switches time.Local to the destination zone.
func (t *Traveller) enterZone() {
	if t.loc == nil {
		return
	}
	t.prevLocal = time.Local
	time.Local = t.loc
}

func (t *Traveller) leaveZone() {
	if t.prevLocal == nil {
		return
	}
	time.Local = t.prevLocal
	t.prevLocal = nil
}

// realTimeNS reads the real clock, bypassing interception when it is active.
func realTimeNS() int64 {
	ns, err := timemachine.OriginalTimeNS()
	if errors.Is(err, timemachine.ErrNotIntercepting) {
		return clock.TimeNS()
	}
	return ns
}
