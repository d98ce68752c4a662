package repeater

import (
	"time"

	"github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/line"
)

// StatusBlink toggles a status LED every Interval to show the loop is alive.
type StatusBlink struct {
	Pin      line.OutputPin
	Interval time.Duration

	level bool
	next  time.Time
}

// NewStatusBlink creates a StatusBlink starting with the LED on.
func NewStatusBlink(pin line.OutputPin, interval time.Duration) *StatusBlink {
	return &StatusBlink{Pin: pin, Interval: interval, level: true}
}

// Control implements framework.Controller.
func (b *StatusBlink) Control(cc framework.ControlContext) error {
	now := cc.Time()
	if now.Before(b.next) {
		return nil
	}
	b.level = !b.level
	b.Pin.Set(b.level)
	b.next = now.Add(b.Interval)
	return nil
}

// AddToLoop implements framework.LoopAdder.
func (b *StatusBlink) AddToLoop(l *framework.Loop) {
	l.AddController(framework.PrLvIndicate, b)
}
