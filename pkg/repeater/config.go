package repeater

import (
	"flag"
	"fmt"
	"time"

	"github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/pulse"
)

// LatchMode decides what happens to the cache once it holds a frame.
type LatchMode int

const (
	// LatchFirst keeps the first captured frame forever.
	LatchFirst LatchMode = iota
	// LatchEvery replaces the cache with every new capture before replaying.
	LatchEvery
)

// String implements flag.Value.
func (m LatchMode) String() string {
	if m == LatchEvery {
		return "every"
	}
	return "first"
}

// Set implements flag.Value.
func (m *LatchMode) Set(s string) error {
	switch s {
	case "first":
		*m = LatchFirst
	case "every":
		*m = LatchEvery
	default:
		return fmt.Errorf("unknown latch mode %q", s)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *LatchMode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// Config configures the repeater tasks.
type Config struct {
	// Invert flips every level of a frame before it is cached.
	Invert bool      `yaml:"invert"`
	Latch  LatchMode `yaml:"latch"`
	// IdleBefore is how long a capture waits for the first edge.
	IdleBefore time.Duration `yaml:"idle_before"`
	// IdleBetween is the silence ending a frame.
	IdleBetween time.Duration `yaml:"idle_between"`
	// Width of the rendered trace.
	Width int `yaml:"width"`
	// PollInterval is how often the trigger pin is sampled.
	PollInterval time.Duration `yaml:"poll_interval"`
	// Debounce is the hold-off after a trigger fired.
	Debounce      time.Duration `yaml:"debounce"`
	BlinkInterval time.Duration `yaml:"blink_interval"`
}

var defaultConfig = Config{
	Invert:        true,
	Latch:         LatchFirst,
	IdleBefore:    time.Second,
	IdleBetween:   8 * time.Millisecond,
	Width:         pulse.DefaultWidth,
	PollInterval:  framework.DefaultInterval,
	Debounce:      100 * time.Millisecond,
	BlinkInterval: time.Second,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.Invert, "invert", defaultConfig.Invert, "Invert captured frames (mirror).")
	flag.Var(&defaultConfig.Latch, "latch", "Cache policy: first or every.")
	flag.DurationVar(&defaultConfig.IdleBefore, "idle-before", defaultConfig.IdleBefore, "Wait for the first edge of a frame.")
	flag.IntVar(&defaultConfig.Width, "width", defaultConfig.Width, "Trace width in characters.")
	flag.DurationVar(&defaultConfig.PollInterval, "poll", defaultConfig.PollInterval, "Trigger pin poll interval.")
	flag.DurationVar(&defaultConfig.Debounce, "debounce", defaultConfig.Debounce, "Hold-off after a trigger.")
	flag.DurationVar(&defaultConfig.BlinkInterval, "blink", defaultConfig.BlinkInterval, "Status LED blink interval.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// Validate checks the values a Repeater cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("invalid trace width %d", c.Width)
	case c.IdleBefore <= 0 || c.IdleBetween <= 0:
		return fmt.Errorf("idle timeouts must be positive")
	case c.PollInterval <= 0:
		return fmt.Errorf("invalid poll interval %v", c.PollInterval)
	}
	return nil
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
