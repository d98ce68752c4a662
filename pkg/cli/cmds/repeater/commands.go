package repeater

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/edgeline/pkg/cli/sh"
	"github.com/robotalks/edgeline/pkg/pulse"
)

var (
	// ShowCmd renders the cached frame.
	ShowCmd = ishell.Cmd{
		Name:    "show",
		Aliases: []string{"sh"},
		Help:    "[dump]",
		Func: func(c *ishell.Context) {
			b := sh.BenchFrom(c)
			f, n, init, ok := b.Repeater.Cache().Snapshot()
			if !ok {
				c.Println("cache empty")
				return
			}
			c.Printf("init=%s len=%d\n%s\n", init, n, pulse.RenderN(f, n, b.Repeater.Width))
			if len(c.Args) > 0 && c.Args[0] == "dump" {
				c.Println(strings.Join(pulse.Dump(f), "\n"))
			}
		},
	}

	// ClearCmd drops the cached frame so the next capture is stored.
	ClearCmd = ishell.Cmd{
		Name: "clear",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.BenchFrom(c).Repeater.Cache().Clear()
			c.Println("OK")
		},
	}

	// TriggerCmd toggles the trigger pin without sending anything.
	TriggerCmd = ishell.Cmd{
		Name:    "trigger",
		Aliases: []string{"t"},
		Help:    "",
		Func: func(c *ishell.Context) {
			sh.BenchFrom(c).Trigger.Toggle()
			c.Println("OK")
		},
	}

	// FaultCmd injects a peripheral fault.
	FaultCmd = ishell.Cmd{
		Name: "fault",
		Help: "rx|tx",
		Func: func(c *ishell.Context) {
			b := sh.BenchFrom(c)
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("rx or tx required"))
				return
			}
			switch c.Args[0] {
			case "rx":
				b.BusTap.Fail(errors.New("injected rx fault"))
			case "tx":
				b.Reply.FailNext(errors.New("injected tx fault"))
			default:
				c.Err(fmt.Errorf("unknown fault %q", c.Args[0]))
				return
			}
			c.Println("OK")
		},
	}
)

func init() {
	sh.AddCmds(
		&ShowCmd,
		&ClearCmd,
		&TriggerCmd,
		&FaultCmd,
	)
}
