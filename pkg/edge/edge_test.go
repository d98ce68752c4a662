package edge

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitLevel(t *testing.T) {
	require.Equal(t, High, LevelOf(true))
	require.Equal(t, Low, LevelOf(false))
	require.True(t, High.IsHigh())
	require.False(t, Low.IsHigh())
	require.Equal(t, "High", High.String())
	require.Equal(t, "Low", Low.String())
}

func TestErrors(t *testing.T) {
	cause := errors.New("fifo")
	var err error = fmt.Errorf("cycle: %w", &CaptureError{Kind: GenericError, Err: cause})
	require.True(t, errors.Is(err, ErrCapture))
	require.True(t, errors.Is(err, cause))
	require.False(t, errors.Is(err, ErrTrigger))
	require.Equal(t, "capture: generic error", (&CaptureError{}).Error())

	err = &TriggerError{Kind: CapacityExceeded, Err: cause}
	require.True(t, errors.Is(err, ErrTrigger))
	require.True(t, errors.Is(err, cause))
	require.Equal(t, "trigger: capacity exceeded: fifo", err.Error())
	require.Equal(t, "trigger: invalid period", (&TriggerError{Kind: InvalidPeriod}).Error())

	var te *TriggerError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", err), &te))
	require.Equal(t, CapacityExceeded, te.Kind)
}

func TestSystemTime(t *testing.T) {
	tb := NewSystemTime()
	a := tb.Now()
	time.Sleep(time.Millisecond)
	b := tb.Now()
	require.True(t, b.Sub(a) >= time.Millisecond)
}
