package repeater

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/line"
)

// Target receives triggers from a TriggerWatcher.
type Target interface {
	Trigger()
	Received() int
}

// TriggerWatcher samples the trigger pin once per loop iteration and
// triggers Target when the level differs from the last observed one.
// Samples within Debounce of a trigger are ignored.
type TriggerWatcher struct {
	Pin      line.Pin
	Target   Target
	Debounce time.Duration

	last      bool
	holdUntil time.Time
}

// NewTriggerWatcher creates a TriggerWatcher. The pin is assumed low at start.
func NewTriggerWatcher(pin line.Pin, target Target, debounce time.Duration) *TriggerWatcher {
	return &TriggerWatcher{Pin: pin, Target: target, Debounce: debounce}
}

// Control implements framework.Controller.
func (w *TriggerWatcher) Control(cc framework.ControlContext) error {
	now := cc.Time()
	if now.Before(w.holdUntil) {
		return nil
	}
	level := w.Pin.Get()
	if level == w.last {
		return nil
	}
	w.last = level
	w.holdUntil = now.Add(w.Debounce)
	glog.Infof("button %v, count: %d", level, w.Target.Received())
	w.Target.Trigger()
	return nil
}

// AddToLoop implements framework.LoopAdder.
func (w *TriggerWatcher) AddToLoop(l *framework.Loop) {
	l.AddController(framework.PrLvSense, w)
}
