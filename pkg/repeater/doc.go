// Package repeater implements the loopback diagnostic: on every trigger-line
// change it captures one frame from the bus, latches it in a Cache and
// replays the cached frame on later triggers.
package repeater
