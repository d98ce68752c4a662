package line

import (
	"errors"
	"fmt"
)

var (
	// ErrIdle is returned by Receiver.WaitEdge when no edge arrives in time.
	ErrIdle = errors.New("line idle")
	// ErrMalformed indicates edges out of order or without a level change.
	ErrMalformed = errors.New("malformed edge sequence")
	// ErrConfig matches any *ConfigError with errors.Is.
	ErrConfig = errors.New("invalid line config")
)

// ConfigError reports an invalid line configuration.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("line config %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrConfig) true.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
