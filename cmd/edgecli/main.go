package main

import (
	"github.com/robotalks/edgeline/pkg/cli/sh"
	"github.com/robotalks/edgeline/pkg/env"
	"github.com/robotalks/edgeline/pkg/line"
	"github.com/robotalks/edgeline/pkg/repeater"

	_ "github.com/robotalks/edgeline/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	line.SetupFlags()
	repeater.SetupFlags()
	env.SetupFlags()
	env.SetupFileSection("line", line.Default())
	env.SetupFileSection("repeater", repeater.Default())
}

func main() {
	sh.Main()
}
