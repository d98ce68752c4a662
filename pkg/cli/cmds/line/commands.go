package line

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/edgeline/pkg/bench"
	"github.com/robotalks/edgeline/pkg/cli/sh"
	"github.com/robotalks/edgeline/pkg/pulse"
)

func parsePeriod(args []string, n int) (time.Duration, error) {
	if len(args) <= n {
		return bench.DefaultPeriod, nil
	}
	d, err := time.ParseDuration(args[n])
	if err != nil {
		return 0, fmt.Errorf("Invalid PERIOD: %v", err)
	}
	return d, nil
}

var (
	// SendCmd sends a Manchester coded message from the master.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "MSG(uint32) [PERIOD]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("MSG required"))
				return
			}
			msg, err := strconv.ParseUint(c.Args[0], 0, 32)
			if err != nil {
				c.Err(fmt.Errorf("Invalid MSG: %v", err))
				return
			}
			period, err := parsePeriod(c.Args, 1)
			if err != nil {
				c.Err(err)
				return
			}
			if err := sh.BenchFrom(c).Send(uint32(msg), period); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// EdgesCmd sends raw edges from the master.
	EdgesCmd = ishell.Cmd{
		Name:    "edges",
		Aliases: []string{"e"},
		Help:    "EDGES(0/1...) [PERIOD]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("EDGES required"))
				return
			}
			edges, err := sh.ParseEdges(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			period, err := parsePeriod(c.Args, 1)
			if err != nil {
				c.Err(err)
				return
			}
			if err := sh.BenchFrom(c).SendEdges(edges, period); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// ReplyCmd captures the repeater reply on the master side.
	ReplyCmd = ishell.Cmd{
		Name:    "reply",
		Aliases: []string{"r"},
		Help:    "[TIMEOUT]",
		Func: func(c *ishell.Context) {
			timeout := time.Second
			if len(c.Args) > 0 {
				d, err := time.ParseDuration(c.Args[0])
				if err != nil {
					c.Err(fmt.Errorf("Invalid TIMEOUT: %v", err))
					return
				}
				timeout = d
			}
			s := sh.ShellFrom(c)
			capture, err := s.Bench.CaptureReply(timeout)
			if err != nil {
				c.Err(err)
				return
			}
			d := capture.Decoded
			s.Print(c, d, "init=%s len=%d total=%d truncated=%v\n%s\n",
				d.Init, d.Length, d.Total, capture.Truncated,
				pulse.Render(capture.Frame, pulse.DefaultWidth))
		},
	}
)

func init() {
	sh.AddCmds(
		&SendCmd,
		&EdgesCmd,
		&ReplyCmd,
	)
}
