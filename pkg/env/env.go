// Package env provides process level configuration shared by the commands.
package env

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/report"
)

// Config provides common options of the commands.
type Config struct {
	// DeviceID names this repeater in reports.
	DeviceID string `yaml:"device_id"`
	// ReportURL lists comma separated report sinks,
	// e.g. mqtt://host:port/topic-prefix,file:frames.bin
	ReportURL string `yaml:"report_url"`
}

var defaultConfig = Config{}

func init() {
	if val := os.Getenv("EDGELINE_REPORT_URL"); val != "" {
		defaultConfig.ReportURL = val
	}
	if val := os.Getenv("EDGELINE_DEVICE_ID"); val != "" {
		defaultConfig.DeviceID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.DeviceID, "device", defaultConfig.DeviceID, "Device ID, machine id if empty.")
	flag.StringVar(&defaultConfig.ReportURL, "report", defaultConfig.ReportURL, "Report sink URLs, comma separated.")
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

// Device returns DeviceID or the machine id.
func (c *Config) Device() string {
	if c.DeviceID != "" {
		return c.DeviceID
	}
	return MachineID()
}

// Env holds the opened report sinks.
type Env struct {
	Config    *Config
	Device    string
	Sinks     []report.Sink
	Publisher report.Publisher
}

// NewEnv opens every report sink. Publisher is nil without sinks.
func (c *Config) NewEnv() (*Env, error) {
	e := &Env{Config: c, Device: c.Device()}
	var mux report.Mux
	for _, u := range strings.Split(c.ReportURL, ",") {
		if u = strings.TrimSpace(u); u == "" {
			continue
		}
		sink, err := report.Open(u, e.Device)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open report sink %q error: %w", u, err)
		}
		glog.Infof("reporting to %s", u)
		e.Sinks = append(e.Sinks, sink)
		mux = append(mux, report.NewPublisher(sink, e.Device))
	}
	switch len(mux) {
	case 0:
	case 1:
		e.Publisher = mux[0]
	default:
		e.Publisher = mux
	}
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	e, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return e
}

// Close closes all sinks.
func (e *Env) Close() error {
	var errs framework.AggregatedError
	for _, s := range e.Sinks {
		errs.Add(s.Close())
	}
	e.Sinks = nil
	return errs.Aggregate()
}

// Serve runs r and closes the sinks once r has returned, so a cycle still
// in flight when ctx is done publishes to open sinks.
func (e *Env) Serve(ctx context.Context, r framework.Runnable) error {
	err := r.Run(ctx)
	if cerr := e.Close(); cerr != nil {
		glog.Errorf("close report sinks: %v", cerr)
	}
	return err
}
