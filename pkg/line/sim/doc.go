// Package sim provides host-side stand-ins for the pulse-timing peripheral
// and GPIO pins, so the transport and the repeater run without hardware.
package sim
