package mqtt

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout bounds connect and publish waits.
const DefaultTimeout = 5 * time.Second

// ErrTimeout indicates the broker did not acknowledge in time.
var ErrTimeout = errors.New("mqtt timeout")

// Writer implements report.Sink by publishing each packet to Topic.
type Writer struct {
	Queue   *Queue
	Topic   string
	QoS     byte
	Timeout time.Duration
}

// NewWriter creates a Writer.
func NewWriter(q *Queue, topic string) *Writer {
	return &Writer{Queue: q, Topic: topic, Timeout: DefaultTimeout}
}

// Dial connects to the broker at brokerURL and returns a Writer
// publishing the frame reports of device.
func Dial(brokerURL, device string) (*Writer, error) {
	q, err := NewQueueFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	token := q.Connect()
	if !token.WaitTimeout(DefaultTimeout) {
		q.Close()
		return nil, ErrTimeout
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return NewWriter(q, FramesTopic(device)), nil
}

// WritePacket implements PacketWriter.
func (w *Writer) WritePacket(pkt []byte) error {
	token := w.Queue.PubWith(w.Topic, pkt, w.QoS, false)
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if !token.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return token.Error()
}

// Close implements io.Closer.
func (w *Writer) Close() error {
	return w.Queue.Close()
}

// Packet is a payload received on a topic.
type Packet struct {
	Topic   string
	Payload []byte
}

// Reader delivers packets received on a topic pattern.
type Reader struct {
	Queue   *Queue
	Pattern string

	packetCh chan Packet
}

// NewReader creates the Reader.
func NewReader(q *Queue, pattern string) *Reader {
	return &Reader{Queue: q, Pattern: pattern, packetCh: make(chan Packet, 16)}
}

// Packets returns the channel of received packets. It is closed when Run returns.
func (r *Reader) Packets() <-chan Packet {
	return r.packetCh
}

// Run implements Runnable.
func (r *Reader) Run(ctx context.Context) error {
	sub := r.Queue.Sub(r.Pattern, r.handleMsg)
	defer close(r.packetCh)
	defer sub.Close()
	<-ctx.Done()
	return ctx.Err()
}

func (r *Reader) handleMsg(topic string, payload []byte) {
	select {
	case r.packetCh <- Packet{Topic: topic, Payload: payload}:
	case <-time.After(time.Second):
	}
}
