package edge

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActivity indicates no edge arrived before the initial idle timeout.
	ErrNoActivity = errors.New("no line activity")
	// ErrCapture matches any *CaptureError with errors.Is.
	ErrCapture = errors.New("capture error")
	// ErrTrigger matches any *TriggerError with errors.Is.
	ErrTrigger = errors.New("trigger error")
)

// CaptureErrorKind classifies capture failures.
type CaptureErrorKind int

const (
	// GenericError is a peripheral-level capture failure or malformed completion.
	GenericError CaptureErrorKind = iota
)

// CaptureError is returned by EdgeCapture implementations.
type CaptureError struct {
	Kind CaptureErrorKind
	Err  error
}

// Error implements error.
func (e *CaptureError) Error() string {
	if e.Err == nil {
		return "capture: generic error"
	}
	return fmt.Sprintf("capture: generic error: %v", e.Err)
}

// Unwrap returns the peripheral error.
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCapture) true.
func (e *CaptureError) Is(target error) bool {
	return target == ErrCapture
}

// TriggerErrorKind classifies trigger failures.
type TriggerErrorKind int

const (
	// TriggerFailed is a peripheral-level transmit failure.
	TriggerFailed TriggerErrorKind = iota
	// CapacityExceeded means the edge sequence does not fit one frame.
	CapacityExceeded
	// InvalidPeriod means the half-bit period cannot be expressed in ticks.
	InvalidPeriod
)

var triggerErrorNames = map[TriggerErrorKind]string{
	TriggerFailed:    "transmit failed",
	CapacityExceeded: "capacity exceeded",
	InvalidPeriod:    "invalid period",
}

// TriggerError is returned by EdgeTrigger implementations.
type TriggerError struct {
	Kind TriggerErrorKind
	Err  error
}

// Error implements error.
func (e *TriggerError) Error() string {
	if e.Err == nil {
		return "trigger: " + triggerErrorNames[e.Kind]
	}
	return fmt.Sprintf("trigger: %s: %v", triggerErrorNames[e.Kind], e.Err)
}

// Unwrap returns the underlying error.
func (e *TriggerError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTrigger) true.
func (e *TriggerError) Is(target error) bool {
	return target == ErrTrigger
}
