// Package travel moves the clock of package clock to a chosen instant.
//
//	tr, err := travel.New("1985-10-26T01:21:00Z", travel.WithTick(false))
//	if err != nil {
//		return err
//	}
//	return tr.Run(func(t *travel.Traveller) error {
//		fmt.Println(clock.Now()) // 1985-10-26 01:21:00 +0000 UTC
//		return nil
//	})
//
// Travels nest. The first one started installs interception through
// package timemachine, the last one stopped removes it, and in between the
// most recently started traveller decides what time it is.
package travel

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dhima/time-machine/pkg/timemachine"
	"go.uber.org/zap"
)

// Option configures a Travel.
type Option func(*options)

type options struct {
	tick *bool
}

// WithTick sets whether travellers advance with real time after arriving.
// Travels tick by default.
func WithTick(tick bool) Option {
	return func(o *options) {
		o.tick = &tick
	}
}

// Travel is a destination resolved once, from which travellers are started.
type Travel struct {
	dest destination
	tick bool
}

// New resolves dest. See resolve for the accepted destination types.
func New(dest any, opts ...Option) (*Travel, error) {
	o := applyOptions(opts)
	d, err := resolve(dest)
	if err != nil {
		return nil, err
	}
	tick := true
	if o.tick != nil {
		tick = *o.tick
	}
	return &Travel{dest: d, tick: tick}, nil
}

// TickOf returns the tick setting carried by opts, or nil when none is.
func TickOf(opts ...Option) *bool {
	return applyOptions(opts).tick
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	mu    sync.Mutex
	stack []*Traveller
)

// Start pushes a new traveller for the destination. The first traveller on
// the stack installs interception.
func (tr *Travel) Start() (*Traveller, error) {
	mu.Lock()
	defer mu.Unlock()

	if len(stack) == 0 {
		previous := timemachine.SetPolicy(virtualClock{})
		if err := timemachine.Patch(); err != nil {
			timemachine.SetPolicy(previous)
			return nil, fmt.Errorf("start travel: %w", err)
		}
	}

	t := newTraveller(tr.dest, tr.tick)
	stack = append(stack, t)
	t.start()

	log().Debug("traveller started",
		zap.String("traveller_id", t.id),
		zap.Time("destination", time.Unix(0, tr.dest.ns).UTC()),
		zap.Bool("tick", tr.tick),
		zap.Int("depth", len(stack)),
	)
	return t, nil
}

// Stop pops the most recently started traveller. The last traveller off the
// stack removes interception.
func (tr *Travel) Stop() error {
	return stopTop()
}

// Run starts a traveller, calls fn with it and stops it again.
func (tr *Travel) Run(fn func(*Traveller) error) (err error) {
	t, err := tr.Start()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, tr.Stop())
	}()
	return fn(t)
}

func stopTop() error {
	mu.Lock()
	defer mu.Unlock()

	if len(stack) == 0 {
		return ErrNotTravelling
	}
	t := stack[len(stack)-1]
	stack[len(stack)-1] = nil
	stack = stack[:len(stack)-1]
	t.stop()

	log().Debug("traveller stopped", zap.String("traveller_id", t.id), zap.Int("depth", len(stack)))

	if len(stack) > 0 {
		return nil
	}
	if err := timemachine.Unpatch(); err != nil {
		return fmt.Errorf("stop travel: %w", err)
	}
	timemachine.SetPolicy(nil)
	return nil
}

// StopAll stops every running traveller.
func StopAll() error {
	for IsTravelling() {
		if err := stopTop(); err != nil && !errors.Is(err, ErrNotTravelling) {
			return err
		}
	}
	return nil
}

// Current returns the traveller deciding the time, or nil.
func Current() *Traveller {
	mu.Lock()
	defer mu.Unlock()
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Running reports whether t is still on the travel stack.
func (t *Traveller) Running() bool {
	mu.Lock()
	defer mu.Unlock()
	for _, running := range stack {
		if running == t {
			return true
		}
	}
	return false
}

// Depth returns the number of running travellers.
func Depth() int {
	mu.Lock()
	defer mu.Unlock()
	return len(stack)
}

// IsTravelling reports whether any traveller is running.
func IsTravelling() bool {
	return Depth() > 0
}

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger sets the logger for traveller lifecycle events. A nil l
// discards them.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func log() *zap.Logger {
	return logger.Load()
}
