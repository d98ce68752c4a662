package sim

import (
	"context"
	"slices"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/line"
)

// ManchesterEdges expands msg into a start bit, 32 data bits (MSB first)
// and a stop bit, two edges per bit. Under the negative-edge-is-one
// polarity a one becomes a high-to-low transition mid-bit.
func ManchesterEdges(msg uint32) []bool {
	edges := make([]bool, 0, 68)
	bit := func(b bool) {
		edges = append(edges, !b, b)
	}
	bit(true)
	for i := 31; i >= 0; i-- {
		bit(msg&(1<<uint(i)) != 0)
	}
	bit(true)
	return edges
}

// Master plays the other bus party: it flips the trigger pin, waits Lead
// and sends one message on the bus, every Interval.
type Master struct {
	Trigger  line.OutputPin
	Bus      edge.EdgeTrigger
	Interval time.Duration
	Lead     time.Duration
	Period   time.Duration
	// Message picks the n-th message to send.
	Message func(n int) uint32

	level bool
	sent  int
}

// Sent returns the number of messages sent.
func (m *Master) Sent() int {
	return m.sent
}

// Run implements Runnable.
func (m *Master) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		m.level = !m.level
		m.Trigger.Set(m.level)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.Lead):
		}
		msg := uint32(m.sent)
		if m.Message != nil {
			msg = m.Message(m.sent)
		}
		if err := m.Bus.Trigger(slices.Values(ManchesterEdges(msg)), m.Period); err != nil {
			glog.Errorf("master send %08x failed: %v", msg, err)
			continue
		}
		m.sent++
		glog.V(2).Infof("master sent %08x", msg)
	}
}
