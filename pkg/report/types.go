package report

import (
	"io"
	"sync"

	"github.com/robotalks/edgeline/pkg/framework"
)

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// Sink is a PacketWriter owning its connection.
type Sink interface {
	PacketWriter
	io.Closer
}

// Publisher accepts reports.
type Publisher interface {
	Publish(*Report) error
}

// PublishFunc is the func form of Publisher.
type PublishFunc func(*Report) error

// Publish implements Publisher.
func (f PublishFunc) Publish(r *Report) error {
	return f(r)
}

// PacketPublisher numbers reports, stamps the device and writes them
// to a PacketWriter.
type PacketPublisher struct {
	Writer PacketWriter
	Device string

	lock sync.Mutex
	seq  uint64
}

// NewPublisher creates a PacketPublisher.
func NewPublisher(w PacketWriter, device string) *PacketPublisher {
	return &PacketPublisher{Writer: w, Device: device}
}

// Publish implements Publisher.
func (p *PacketPublisher) Publish(r *Report) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.seq++
	r.Seq, r.Device = p.seq, p.Device
	data, err := r.Encode()
	if err != nil {
		return err
	}
	return p.Writer.WritePacket(data)
}

// Mux publishes to every Publisher and aggregates their errors.
type Mux []Publisher

// Publish implements Publisher.
func (m Mux) Publish(r *Report) error {
	var errs framework.AggregatedError
	for _, p := range m {
		errs.Add(p.Publish(r))
	}
	return errs.Aggregate()
}
