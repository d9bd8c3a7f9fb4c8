package control

import (
	"errors"
	"testing"
	"time"

	"github.com/dhima/time-machine/pkg/travel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var y2k = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	s := NewService()
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func frozen() *bool {
	tick := false
	return &tick
}

func TestStatus_WhenNotTravelling_ThenReportsRealTime(t *testing.T) {
	s := newService(t)
	before := time.Now()

	st := s.Status()

	assert.False(t, st.Travelling)
	assert.Zero(t, st.Depth)
	assert.Empty(t, st.TravellerID)
	assert.False(t, st.Now.Before(before))
}

func TestTravel_WhenNotTravelling_ThenStartsTraveller(t *testing.T) {
	// Arrange
	s := newService(t)

	// Act
	st, err := s.Travel("2000-01-01T00:00:00Z", frozen())

	// Assert
	require.NoError(t, err)
	assert.True(t, st.Travelling)
	assert.Equal(t, 1, st.Depth)
	assert.NotEmpty(t, st.TravellerID)
	assert.True(t, st.Now.Equal(y2k))
	assert.True(t, st.RealNow.After(y2k))
}

func TestTravel_WhenAlreadyTravelling_ThenMovesSameTraveller(t *testing.T) {
	// Arrange
	s := newService(t)
	first, err := s.Travel(y2k, frozen())
	require.NoError(t, err)

	// Act
	second, err := s.Travel(float64(0), nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, first.TravellerID, second.TravellerID)
	assert.Equal(t, 1, second.Depth)
	assert.Equal(t, int64(0), second.Now.Unix())
}

func TestTravel_WhenDestinationInvalid_ThenValidationError(t *testing.T) {
	s := newService(t)

	_, err := s.Travel(true, nil)

	var validationErr ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.False(t, travel.IsTravelling())
}

func TestShift_WhenNotTravelling_ThenErrNotTravelling(t *testing.T) {
	s := newService(t)

	_, err := s.Shift(time.Hour)

	assert.ErrorIs(t, err, ErrNotTravelling)
}

func TestShift_WhenTravelling_ThenMovesClock(t *testing.T) {
	// Arrange
	s := newService(t)
	_, err := s.Travel(y2k, frozen())
	require.NoError(t, err)

	// Act
	st, err := s.Shift(90 * time.Minute)

	// Assert
	require.NoError(t, err)
	assert.True(t, st.Now.Equal(y2k.Add(90*time.Minute)))
}

func TestCron_WhenTravelling_ThenJumpsToNextFireTime(t *testing.T) {
	// Arrange
	s := newService(t)
	_, err := s.Travel(y2k, frozen())
	require.NoError(t, err)

	// Act
	st, err := s.Cron(travel.CronConfig{Cron: "30 8 * * *", Timezone: "UTC"})

	// Assert
	require.NoError(t, err)
	assert.True(t, st.Now.Equal(time.Date(2000, 1, 1, 8, 30, 0, 0, time.UTC)))
}

func TestCron_WhenExpressionInvalid_ThenValidationError(t *testing.T) {
	s := newService(t)

	_, err := s.Cron(travel.CronConfig{Cron: "every tuesday"})

	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestStop_WhenTravelling_ThenClockIsRealAndSecondStopIsNoop(t *testing.T) {
	// Arrange
	s := newService(t)
	_, err := s.Travel(y2k, frozen())
	require.NoError(t, err)

	// Act & Assert
	require.NoError(t, s.Stop())
	assert.False(t, travel.IsTravelling())
	assert.False(t, s.Snapshot().Patched)
	assert.NoError(t, s.Stop())
}

func TestTravel_WhenStackEmptiedElsewhere_ThenStartsFreshTraveller(t *testing.T) {
	// Arrange
	s := newService(t)
	first, err := s.Travel(y2k, frozen())
	require.NoError(t, err)
	require.NoError(t, travel.StopAll())

	// Act
	status := s.Status()
	_, shiftErr := s.Shift(time.Hour)
	second, err := s.Travel(float64(0), frozen())

	// Assert
	assert.Empty(t, status.TravellerID)
	assert.ErrorIs(t, shiftErr, ErrNotTravelling)
	require.NoError(t, err)
	assert.NotEqual(t, first.TravellerID, second.TravellerID)
	assert.True(t, s.Snapshot().Patched)
	assert.Equal(t, int64(0), second.Now.Unix())
}

func TestStop_WhenAnotherTravellerIsNested_ThenBothStop(t *testing.T) {
	// Arrange
	s := newService(t)
	_, err := s.Travel(y2k, frozen())
	require.NoError(t, err)
	nested, err := travel.New(0, travel.WithTick(false))
	require.NoError(t, err)
	_, err = nested.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = travel.StopAll() })

	// Act
	err = s.Stop()

	// Assert
	require.NoError(t, err)
	assert.False(t, travel.IsTravelling())
	assert.Zero(t, travel.Depth())
}

func TestStop_WhenStackEmptiedElsewhere_ThenNoop(t *testing.T) {
	s := newService(t)
	_, err := s.Travel(y2k, frozen())
	require.NoError(t, err)
	require.NoError(t, travel.StopAll())

	assert.NoError(t, s.Stop())
	assert.False(t, travel.IsTravelling())
}
