package timemachine

import (
	"testing"
	"time"

	"github.com/dhima/time-machine/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests patch the real entry points of package clock.

func TestPatch_WhenFrozenAtEpoch_ThenClockReportsEpoch(t *testing.T) {
	// Arrange
	withPolicy(t, frozenPolicy{at: policyAt})
	require.NoError(t, Patch())
	t.Cleanup(func() { _ = Unpatch() })

	// Act & Assert
	assert.True(t, IsPatched())
	assert.Equal(t, 0.0, clock.Time())
	assert.Equal(t, int64(0), clock.TimeNS())
	assert.True(t, clock.UTCNow().Equal(policyAt))
	assert.True(t, clock.Now().Equal(policyAt))
	assert.Equal(t, policyAt.Unix(), clock.RealClock{}.Now().Unix())

	wall, err := OriginalTimeNS()
	require.NoError(t, err)
	assert.Greater(t, wall, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano())

	s, err := OriginalStrftime("%Y-%m-%d", clock.StructTimeOf(policyAt))
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01", s)
}

func TestUnpatch_WhenRoundTripped_ThenClockIsRealAgain(t *testing.T) {
	// Arrange
	withPolicy(t, frozenPolicy{at: policyAt})
	before := time.Now()
	require.NoError(t, Patch())

	// Act
	require.NoError(t, Unpatch())

	// Assert
	assert.False(t, IsPatched())
	assert.GreaterOrEqual(t, clock.TimeNS(), before.UnixNano())
	first := clock.MonotonicNS()
	second := clock.MonotonicNS()
	assert.GreaterOrEqual(t, second, first)
	wallFirst := clock.TimeNS()
	time.Sleep(time.Millisecond)
	wallSecond := clock.TimeNS()
	assert.Greater(t, wallSecond, wallFirst)
	_, err := OriginalTime()
	assert.ErrorIs(t, err, ErrNotIntercepting)
}

func TestPatch_WhenPOSIXClocksAbsent_ThenForwardersStillRefuse(t *testing.T) {
	// Arrange
	if _, err := clock.Lookup(clock.EntryClockGettime); err == nil {
		t.Skip("POSIX clocks are available on this platform")
	}
	withPolicy(t, frozenPolicy{at: policyAt})
	require.NoError(t, Patch())
	t.Cleanup(func() { _ = Unpatch() })

	// Act
	_, err := OriginalClockGettime(clock.ClockRealtime)

	// Assert
	assert.ErrorIs(t, err, ErrNotIntercepting)
}

func TestPatch_WhenPOSIXClocksPresent_ThenRealtimeIsRedirected(t *testing.T) {
	// Arrange
	if _, err := clock.Lookup(clock.EntryClockGettime); err != nil {
		t.Skip("POSIX clocks are not available on this platform")
	}
	withPolicy(t, frozenPolicy{at: policyAt})
	require.NoError(t, Patch())
	t.Cleanup(func() { _ = Unpatch() })

	// Act
	virtual, err := clock.ClockGettimeNS(clock.ClockRealtime)
	require.NoError(t, err)
	wall, err := OriginalClockGettimeNS(clock.ClockRealtime)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(clock.ClockRealtime), virtual)
	assert.Greater(t, wall, virtual)
}

func TestSnapshot_ThenReflectsTheProcessWideInterceptor(t *testing.T) {
	withPolicy(t, frozenPolicy{at: policyAt})
	require.NoError(t, Patch())
	t.Cleanup(func() { _ = Unpatch() })
	before := Snapshot().Redirects[clock.EntryTime]

	clock.Time()

	stats := Snapshot()
	assert.True(t, stats.Patched)
	assert.Equal(t, before+1, stats.Redirects[clock.EntryTime])
	assert.Same(t, std, Default())
	assert.Len(t, Descriptors(), 11)
}
