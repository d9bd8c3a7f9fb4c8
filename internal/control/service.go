package control

import (
	"errors"
	"sync"
	"time"

	"github.com/dhima/time-machine/pkg/clock"
	"github.com/dhima/time-machine/pkg/timemachine"
	"github.com/dhima/time-machine/pkg/travel"
)

// Status describes the daemon's clock.
type Status struct {
	Travelling  bool      `json:"travelling"`
	Depth       int       `json:"depth"`
	Now         time.Time `json:"now"`
	RealNow     time.Time `json:"real_now"`
	TravellerID string    `json:"traveller_id,omitempty"`
}

// Service owns the one traveller the control API drives. Travellers
// started by code in the same process nest with it as usual.
type Service struct {
	mu        sync.Mutex
	travel    *travel.Travel
	traveller *travel.Traveller
}

// NewService creates a control service that is not travelling.
func NewService() *Service {
	return &Service{}
}

// Status reports the virtual and real time.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Service) status() Status {
	s.forgetStopped()
	st := Status{
		Travelling: travel.IsTravelling(),
		Depth:      travel.Depth(),
		Now:        clock.UTCNow(),
		RealNow:    travel.EscapeHatch.UTCNow(),
	}
	if s.traveller != nil {
		st.TravellerID = s.traveller.ID()
	}
	return st
}

// Travel starts travelling to dest, or moves the running traveller there.
// A nil tick uses the travel default when starting and keeps the current
// setting when moving.
func (s *Service) Travel(dest any, tick *bool) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forgetStopped()
	if s.traveller != nil {
		if err := s.traveller.MoveTo(dest, tick); err != nil {
			return Status{}, destinationError(err)
		}
		return s.status(), nil
	}

	var opts []travel.Option
	if tick != nil {
		opts = append(opts, travel.WithTick(*tick))
	}
	tr, err := travel.New(dest, opts...)
	if err != nil {
		return Status{}, destinationError(err)
	}
	traveller, err := tr.Start()
	if err != nil {
		return Status{}, err
	}
	s.travel, s.traveller = tr, traveller
	return s.status(), nil
}

// Shift moves the running traveller by delta.
func (s *Service) Shift(delta any) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forgetStopped()
	if s.traveller == nil {
		return Status{}, ErrNotTravelling
	}
	if err := s.traveller.Shift(delta); err != nil {
		return Status{}, NewValidationError("%v", err)
	}
	return s.status(), nil
}

// Cron travels to the next time cfg fires after the current, possibly
// virtual, time.
func (s *Service) Cron(cfg travel.CronConfig) (Status, error) {
	seq, err := travel.Cron(cfg.Cron, cfg.Timezone, clock.Now())
	if err != nil {
		return Status{}, NewValidationError("%v", err)
	}
	return s.Travel(seq, nil)
}

// Stop ends the service's travel, together with any travellers started on
// top of it. Stopping when not travelling does nothing.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forgetStopped()
	if s.traveller == nil {
		return nil
	}
	for s.traveller.Running() {
		if err := s.travel.Stop(); err != nil && !errors.Is(err, travel.ErrNotTravelling) {
			return err
		}
	}
	s.travel, s.traveller = nil, nil
	return nil
}

// forgetStopped drops the service's traveller once something else, such
// as travel.StopAll, has taken it off the stack.
func (s *Service) forgetStopped() {
	if s.traveller != nil && !s.traveller.Running() {
		s.travel, s.traveller = nil, nil
	}
}

// Snapshot returns the interception statistics.
func (s *Service) Snapshot() timemachine.Stats {
	return timemachine.Snapshot()
}

func destinationError(err error) error {
	var destErr *travel.DestinationError
	if errors.As(err, &destErr) {
		return NewValidationError("%v", err)
	}
	return err
}
