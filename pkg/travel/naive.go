package travel

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// NaiveMode decides how a destination string without a zone is placed on
// the timeline.
type NaiveMode int32

const (
	// NaiveMixed reads naive strings in time.Local. It is the default.
	NaiveMixed NaiveMode = iota + 1
	// NaiveUTC reads naive strings in UTC.
	NaiveUTC
	// NaiveLocal reads naive strings in time.Local.
	NaiveLocal
	// NaiveError rejects naive strings with ErrNaiveDestination.
	NaiveError
)

func (m NaiveMode) String() string {
	switch m {
	case NaiveMixed:
		return "mixed"
	case NaiveUTC:
		return "utc"
	case NaiveLocal:
		return "local"
	case NaiveError:
		return "error"
	default:
		return fmt.Sprintf("NaiveMode(%d)", int32(m))
	}
}

// ParseNaiveMode parses the String form of a NaiveMode, ignoring case.
func ParseNaiveMode(s string) (NaiveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mixed":
		return NaiveMixed, nil
	case "utc":
		return NaiveUTC, nil
	case "local":
		return NaiveLocal, nil
	case "error":
		return NaiveError, nil
	default:
		return 0, fmt.Errorf("invalid naive mode %q: want one of mixed, utc, local, error", s)
	}
}

var naiveMode atomic.Int32

func init() {
	naiveMode.Store(int32(NaiveMixed))
}

// SetNaiveMode sets the naive mode used when destinations are resolved and
// returns the previous one.
func SetNaiveMode(m NaiveMode) NaiveMode {
	return NaiveMode(naiveMode.Swap(int32(m)))
}

// CurrentNaiveMode returns the naive mode in effect.
func CurrentNaiveMode() NaiveMode {
	return NaiveMode(naiveMode.Load())
}

// naiveLocation returns where a naive string is read under m.
func naiveLocation(m NaiveMode) (*time.Location, error) {
	switch m {
	case NaiveUTC:
		return time.UTC, nil
	case NaiveError:
		return nil, ErrNaiveDestination
	default:
		return time.Local, nil
	}
}
