package sim

import (
	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/line"
)

// Bench wires up the simulated hardware of a repeater board: the bus line
// it listens on, the line it replies on, a trigger input and a status LED.
type Bench struct {
	Bus     *Wire
	Reply   *Wire
	Trigger *Pin
	Status  *Pin
	// BusTap and ReplyTap are the receivers of the repeater and the master.
	BusTap   *Tap
	ReplyTap *Tap
}

// NewBench creates a Bench whose wires use the tick resolution of conf.
func NewBench(conf *line.Config, realtime bool) *Bench {
	tb := edge.NewSystemTime()
	b := &Bench{
		Bus:     NewWire(tb, conf.Resolution()),
		Reply:   NewWire(tb, conf.Resolution()),
		Trigger: NewPin(false),
		Status:  NewPin(true),
	}
	b.Bus.Realtime, b.Reply.Realtime = realtime, realtime
	return b
}

// Repeater opens the repeater's transport: capture from Bus, transmit on Reply.
func (b *Bench) Repeater(conf *line.Config) (*line.Adapter, error) {
	b.BusTap = b.Bus.Tap(0)
	return line.Open(b.BusTap, b.Reply, conf)
}

// Master opens the other party's transport: transmit on Bus, capture from Reply.
func (b *Bench) Master(conf *line.Config) (*line.Adapter, error) {
	b.ReplyTap = b.Reply.Tap(0)
	return line.Open(b.ReplyTap, b.Bus, conf)
}
