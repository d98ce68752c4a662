// Package edge defines the capabilities a bus protocol state machine
// consumes from a line transport.
package edge

// A protocol state machine (e.g. an OpenTherm boiler controller) never
// touches pulse codes. It asks for edges to be captured, receiving the
// starting line level and the measured level durations, and asks for an
// edge sequence to be triggered at a fixed half-bit period.
//
// Producer: line transport (pkg/line)
// Consumer: protocol state machine
