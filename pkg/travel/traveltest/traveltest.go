// Package traveltest provides a time travel fixture for tests.
//
//	func TestInvoiceDue(t *testing.T) {
//		tm := traveltest.New(t)
//		tm.MoveTo("2024-03-01T00:00:00Z", travel.WithTick(false))
//		...
//		tm.Shift(30 * 24 * time.Hour)
//	}
//
// The travel is stopped when the test ends.
package traveltest

import (
	"testing"

	"github.com/dhima/time-machine/pkg/travel"
)

// Fixture drives one travel for the lifetime of a test.
type Fixture struct {
	tb        testing.TB
	travel    *travel.Travel
	traveller *travel.Traveller
}

// New returns a fixture that is not travelling yet and registers its Stop
// with tb.Cleanup.
func New(tb testing.TB) *Fixture {
	f := &Fixture{tb: tb}
	tb.Cleanup(f.Stop)
	return f
}

// MoveTo starts travelling to dest on the first call and moves the running
// traveller on later calls. Only WithTick is honored on later calls, and
// only when given.
func (f *Fixture) MoveTo(dest any, opts ...travel.Option) {
	f.tb.Helper()

	if f.traveller != nil {
		if err := f.traveller.MoveTo(dest, travel.TickOf(opts...)); err != nil {
			f.tb.Fatalf("traveltest: move to %v: %v", dest, err)
		}
		return
	}

	tr, err := travel.New(dest, opts...)
	if err != nil {
		f.tb.Fatalf("traveltest: travel to %v: %v", dest, err)
		return
	}
	traveller, err := tr.Start()
	if err != nil {
		f.tb.Fatalf("traveltest: start travel: %v", err)
		return
	}
	f.travel, f.traveller = tr, traveller
}

// Shift moves the running traveller by delta. It fails the test when
// MoveTo has not been called.
func (f *Fixture) Shift(delta any) {
	f.tb.Helper()

	if f.traveller == nil {
		f.tb.Fatalf("traveltest: initialize the fixture with MoveTo before using Shift")
		return
	}
	if err := f.traveller.Shift(delta); err != nil {
		f.tb.Fatalf("traveltest: shift by %v: %v", delta, err)
	}
}

// Traveller returns the running traveller, or nil before MoveTo.
func (f *Fixture) Traveller() *travel.Traveller {
	return f.traveller
}

// Stop ends the travel. It is safe to call more than once.
func (f *Fixture) Stop() {
	if f.travel == nil {
		return
	}
	if err := f.travel.Stop(); err != nil {
		f.tb.Errorf("traveltest: stop travel: %v", err)
	}
	f.travel, f.traveller = nil, nil
}

