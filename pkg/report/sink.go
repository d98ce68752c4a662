package report

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.bug.st/serial"

	"github.com/robotalks/edgeline/pkg/report/mqtt"
	"github.com/robotalks/edgeline/pkg/report/stream"
	"github.com/robotalks/edgeline/pkg/report/websocket"
)

// DialTimeout bounds connecting a network sink.
const DialTimeout = 5 * time.Second

// DefaultBaudRate is used by serial sinks without a baud query.
const DefaultBaudRate = 115200

// ErrUnsupportedURL indicates a sink URL with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported sink url")

// Open creates the Sink addressed by rawURL:
//
//	mqtt://host:port/prefix  publish to <prefix><device>/frames
//	tcp://host:port          length-prefixed packets over TCP
//	file:path                length-prefixed packets appended to a file
//	ws://host/path           one binary websocket message per packet
//	serial:/dev/ttyUSB0?baud=115200
//	                         length-prefixed packets over a serial port
func Open(rawURL, device string) (Sink, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "mqtt", "mqtts":
		return mqtt.Dial(rawURL, device)
	case "tcp":
		conn, err := net.DialTimeout("tcp", u.Host, DialTimeout)
		if err != nil {
			return nil, err
		}
		return stream.New(conn), nil
	case "file":
		f, err := os.OpenFile(urlPath(u), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		return stream.New(f), nil
	case "ws", "wss":
		origin := "http://" + u.Host + "/"
		if u.Scheme == "wss" {
			origin = "https://" + u.Host + "/"
		}
		return websocket.Dial(rawURL, origin)
	case "serial":
		return openSerial(u)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
}

func urlPath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.Path
}

func openSerial(u *url.URL) (Sink, error) {
	mode := &serial.Mode{
		BaudRate: DefaultBaudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	if val := u.Query().Get("baud"); val != "" {
		baud, err := strconv.Atoi(val)
		if err != nil || baud <= 0 {
			return nil, fmt.Errorf("invalid baud rate %q", val)
		}
		mode.BaudRate = baud
	}
	p, err := serial.Open(urlPath(u), mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %q: %w", urlPath(u), err)
	}
	return stream.New(p), nil
}
