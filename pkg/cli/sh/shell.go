package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/edgeline/pkg/bench"
	"github.com/robotalks/edgeline/pkg/env"
	"github.com/robotalks/edgeline/pkg/line"
	"github.com/robotalks/edgeline/pkg/repeater"
)

// Shell provides ishell backed interactive shell over a simulated bench.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	Realtime    bool

	Shell *ishell.Shell
	Env   *env.Env
	Bench *bench.Bench

	cancel context.CancelFunc
	doneCh chan struct{}
}

const (
	shellKey = "$shell"
	prompt   = "edgeline > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	realtime   bool

	// commands
	commands = []*ishell.Cmd{
		&StatusCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.BoolVar(&realtime, "realtime", realtime, "Transmissions take their real duration.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Realtime:    realtime,

		Shell: ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// BenchFrom gets the running bench from ishell context.
func BenchFrom(c *ishell.Context) *bench.Bench {
	return ShellFrom(c).Bench
}

// Start opens the report sinks, builds the bench and runs its loop.
func (s *Shell) Start(lc *line.Config, rc *repeater.Config, ec *env.Config) error {
	e, err := ec.NewEnv()
	if err != nil {
		return err
	}
	b, err := bench.New(bench.Options{
		Line:      lc,
		Repeater:  rc,
		Realtime:  s.Realtime,
		Publisher: e.Publisher,
	})
	if err != nil {
		e.Close()
		return err
	}
	s.Env, s.Bench = e, b
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel, s.doneCh = cancel, make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		e.Serve(ctx, b.NewLoop())
	}(s.doneCh)
	return nil
}

// Stop stops the bench loop and waits until the report sinks are closed.
func (s *Shell) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.doneCh
		s.cancel = nil
	}
}

// Print writes v as JSON or with format.
func (s *Shell) Print(c *ishell.Context, v interface{}, format string, args ...interface{}) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Printf(format, args...)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Stop()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Status summarizes the bench.
type Status struct {
	State    string `json:"state"`
	Received int    `json:"received"`
	Cached   int    `json:"cached"`
	Cycles   int    `json:"cycles"`
	Sent     int    `json:"sent"`
	Replies  int    `json:"replies"`
	Trigger  bool   `json:"trigger"`
	LED      bool   `json:"led"`
}

// StatusOf collects the Status of b.
func StatusOf(b *bench.Bench) Status {
	return Status{
		State:    b.Repeater.State().String(),
		Received: b.Repeater.Received(),
		Cached:   b.Repeater.Cache().Length(),
		Cycles:   b.Repeater.Cycles(),
		Sent:     b.Master.SendCount(),
		Replies:  b.Reply.Frames(),
		Trigger:  b.Trigger.Get(),
		LED:      b.Status.Get(),
	}
}

// StatusCmd prints the repeater status.
var StatusCmd = ishell.Cmd{
	Name:    "status",
	Aliases: []string{"st"},
	Help:    "",
	Func: func(c *ishell.Context) {
		s := ShellFrom(c)
		st := StatusOf(s.Bench)
		s.Print(c, st, "%s received=%d cached=%d cycles=%d sent=%d replies=%d trigger=%v led=%v\n",
			st.State, st.Received, st.Cached, st.Cycles, st.Sent, st.Replies, st.Trigger, st.LED)
	},
}

// Main is a helper to provide a single call in main.
func Main() {
	env.ParseFlags()
	s := New()
	if err := s.Start(line.Default(), repeater.Default(), env.Default()); err != nil {
		log.Fatalln(err)
	}
	s.Run(flag.Args()...)
}

// ParseEdges parses a string of 0 and 1 into edges.
func ParseEdges(str string) ([]bool, error) {
	edges := make([]bool, 0, len(str))
	for i, ch := range str {
		switch ch {
		case '0':
			edges = append(edges, false)
		case '1':
			edges = append(edges, true)
		case '_', ' ':
		default:
			return nil, fmt.Errorf("invalid edge %q at %d", ch, i)
		}
	}
	return edges, nil
}
