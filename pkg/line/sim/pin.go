package sim

import "sync"

// Pin is a simulated GPIO usable as both line.Pin and line.OutputPin.
type Pin struct {
	lock    sync.Mutex
	level   bool
	changes int
}

// NewPin creates a Pin at level.
func NewPin(level bool) *Pin {
	return &Pin{level: level}
}

// Get implements line.Pin.
func (p *Pin) Get() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.level
}

// Set implements line.OutputPin.
func (p *Pin) Set(level bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.level != level {
		p.level = level
		p.changes++
	}
}

// Toggle inverts the level.
func (p *Pin) Toggle() {
	p.lock.Lock()
	p.level = !p.level
	p.changes++
	p.lock.Unlock()
}

// Changes counts level changes.
func (p *Pin) Changes() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.changes
}
