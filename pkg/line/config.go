package line

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/edgeline/pkg/pulse"
)

// IdlePolicy decides what a capture without any edge returns.
type IdlePolicy int

const (
	// IdleEmpty returns a successful capture of zero halves.
	IdleEmpty IdlePolicy = iota
	// IdleTimeout returns edge.ErrNoActivity.
	IdleTimeout
)

// String implements flag.Value.
func (p IdlePolicy) String() string {
	if p == IdleTimeout {
		return "timeout"
	}
	return "empty"
}

// Set implements flag.Value.
func (p *IdlePolicy) Set(s string) error {
	switch s {
	case "empty":
		*p = IdleEmpty
	case "timeout":
		*p = IdleTimeout
	default:
		return fmt.Errorf("unknown idle policy %q", s)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *IdlePolicy) UnmarshalText(text []byte) error {
	return p.Set(string(text))
}

// Carrier is an optional sub-carrier superimposed on pulses at Level.
type Carrier struct {
	Enabled     bool   `yaml:"enabled"`
	FrequencyHz uint32 `yaml:"frequency_hz"`
	DutyPercent uint8  `yaml:"duty_percent"`
	Level       bool   `yaml:"level"`
}

// Ticks splits one carrier period into high and low source clock ticks.
func (c Carrier) Ticks(clockHz uint32) (high, low uint16) {
	if !c.Enabled || c.FrequencyHz == 0 {
		return 0, 0
	}
	period := uint64(clockHz) / uint64(c.FrequencyHz)
	h := period * uint64(c.DutyPercent) / 100
	return uint16(h), uint16(period - h)
}

// TxConfig is handed unchanged to Transmitter.Configure.
type TxConfig struct {
	// IdleOutput enables driving IdleLevel while not transmitting.
	IdleOutput bool    `yaml:"idle_output"`
	IdleLevel  bool    `yaml:"idle_level"`
	Carrier    Carrier `yaml:"carrier"`
}

// Config is the physical line configuration.
type Config struct {
	// ClockHz and ClockDivider define one peripheral tick.
	ClockHz      uint32 `yaml:"clock_hz"`
	ClockDivider uint8  `yaml:"clock_divider"`
	// Capacity is the frame size in codes.
	Capacity int `yaml:"capacity"`
	// NegativeEdgeIsBinaryOne selects the polarity convention.
	NegativeEdgeIsBinaryOne bool       `yaml:"negative_edge_is_binary_one"`
	IdlePolicy              IdlePolicy `yaml:"idle_policy"`
	// IdleThreshold is the default silence that ends a frame.
	IdleThreshold time.Duration `yaml:"idle_threshold"`
	Tx            TxConfig      `yaml:"tx"`
}

var defaultConfig = Config{
	ClockHz:                 80000000,
	ClockDivider:            64,
	Capacity:                pulse.CapacityProtocol,
	NegativeEdgeIsBinaryOne: true,
	IdlePolicy:              IdleEmpty,
	IdleThreshold:           8 * time.Millisecond,
	Tx: TxConfig{
		IdleOutput: true,
		IdleLevel:  true,
		Carrier: Carrier{
			FrequencyHz: 38000,
			DutyPercent: 50,
			Level:       true,
		},
	},
}

func init() {
	if val := os.Getenv("EDGELINE_CAPACITY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			defaultConfig.Capacity = n
		}
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Func("line-clock-div", "Peripheral clock divider (1-255).", func(s string) error {
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return err
		}
		defaultConfig.ClockDivider = uint8(n)
		return nil
	})
	flag.Func("line-clock-hz", "Peripheral source clock in Hz.", func(s string) error {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}
		defaultConfig.ClockHz = uint32(n)
		return nil
	})
	flag.IntVar(&defaultConfig.Capacity, "line-capacity", defaultConfig.Capacity, "Frame capacity in pulse codes.")
	flag.BoolVar(&defaultConfig.NegativeEdgeIsBinaryOne, "line-negative-one", defaultConfig.NegativeEdgeIsBinaryOne, "Falling edge encodes binary one.")
	flag.Var(&defaultConfig.IdlePolicy, "line-idle-policy", "Result of a capture without activity: empty or timeout.")
	flag.DurationVar(&defaultConfig.IdleThreshold, "line-idle-threshold", defaultConfig.IdleThreshold, "Silence ending a frame.")
	flag.BoolVar(&defaultConfig.Tx.IdleLevel, "line-idle-high", defaultConfig.Tx.IdleLevel, "Idle output level is high.")
	flag.BoolVar(&defaultConfig.Tx.Carrier.Enabled, "line-carrier", defaultConfig.Tx.Carrier.Enabled, "Enable carrier modulation.")
	flag.Func("line-carrier-hz", "Carrier frequency in Hz.", func(s string) error {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}
		defaultConfig.Tx.Carrier.FrequencyHz = uint32(n)
		return nil
	})
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Resolution is the duration of one peripheral tick.
func (c *Config) Resolution() time.Duration {
	if c.ClockHz == 0 {
		return 0
	}
	return time.Duration(uint64(c.ClockDivider) * uint64(time.Second) / uint64(c.ClockHz))
}

// Polarity returns the polarity convention.
func (c *Config) Polarity() pulse.Polarity {
	return pulse.Polarity(c.NegativeEdgeIsBinaryOne)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch {
	case c.ClockHz == 0:
		return &ConfigError{"ClockHz", "must be positive"}
	case c.ClockDivider == 0:
		return &ConfigError{"ClockDivider", "must be positive"}
	case c.Resolution() <= 0:
		return &ConfigError{"ClockDivider", "resolution below 1ns"}
	case c.Capacity <= 0:
		return &ConfigError{"Capacity", "must be positive"}
	case c.IdleThreshold <= 0:
		return &ConfigError{"IdleThreshold", "must be positive"}
	}
	if cr := c.Tx.Carrier; cr.Enabled {
		if cr.FrequencyHz == 0 || cr.FrequencyHz >= c.ClockHz {
			return &ConfigError{"Carrier.FrequencyHz", "out of range"}
		}
		if cr.DutyPercent == 0 || cr.DutyPercent >= 100 {
			return &ConfigError{"Carrier.DutyPercent", "must be within 1-99"}
		}
	}
	return nil
}

// Ticks converts d into peripheral ticks, rounding to nearest.
// ok is false when the result is zero or above pulse.MaxTicks.
func (c *Config) Ticks(d time.Duration) (ticks uint16, ok bool) {
	res := c.Resolution()
	if res <= 0 || d <= 0 {
		return 0, false
	}
	n := (d + res/2) / res
	if n == 0 || n > time.Duration(pulse.MaxTicks) {
		return 0, false
	}
	return uint16(n), true
}
