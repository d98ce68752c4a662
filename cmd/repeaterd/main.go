package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/bench"
	"github.com/robotalks/edgeline/pkg/env"
	fx "github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/line"
	"github.com/robotalks/edgeline/pkg/repeater"
)

var (
	realtime bool
	demo     bool

	demoInterval = 2 * time.Second
)

func init() {
	line.SetupFlags()
	repeater.SetupFlags()
	env.SetupFlags()
	env.SetupFileSection("line", line.Default())
	env.SetupFileSection("repeater", repeater.Default())
	flag.BoolVar(&realtime, "realtime", realtime, "Pace the simulated wires in real time.")
	flag.BoolVar(&demo, "demo", demo, "Run a simulated master sending a counter.")
	flag.DurationVar(&demoInterval, "demo-interval", demoInterval, "Interval between demo messages.")
}

func main() {
	env.ParseFlags()
	defer glog.Flush()

	lc := line.NewConfig()
	if err := lc.Validate(); err != nil {
		log.Fatalln(err)
	}
	e := env.NewConfig().MustNewEnv()
	b, err := bench.New(bench.Options{
		Line:      lc,
		Repeater:  repeater.NewConfig(),
		Realtime:  realtime,
		Publisher: e.Publisher,
	})
	if err != nil {
		log.Fatalln(err)
	}

	loop := b.NewLoop()
	if demo {
		loop.AddRunnable(fx.NamedRun("demo", b.DemoMaster(demoInterval, bench.DefaultPeriod)))
	}
	glog.Infof("repeater %s started, latch=%v invert=%v", e.Device, b.Repeater.Latch, b.Repeater.Invert)
	run := fx.RunFunc(func(ctx context.Context) error {
		return e.Serve(ctx, loop)
	})
	if err := fx.NewRunner().HandleSignals().Go(fx.NamedRun("repeaterd", run)).Wait(); err != nil {
		log.Fatalln(err)
	}
}
