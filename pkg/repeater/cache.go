package repeater

import (
	"sync"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/pulse"
)

// Cache holds at most one captured frame with its decoded length.
// It starts empty and is safe for concurrent use.
type Cache struct {
	lock   sync.Mutex
	frame  *pulse.Frame
	length int
	init   edge.InitLevel
}

// Shared is the process-wide cache of the one physical bus.
var Shared = NewCache()

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) with(fn func()) {
	c.lock.Lock()
	defer c.lock.Unlock()
	fn()
}

// StoreFirst stores a copy of f only when the cache is empty and reports
// whether it did.
func (c *Cache) StoreFirst(f *pulse.Frame, length int, init edge.InitLevel) (stored bool) {
	c.with(func() {
		if c.frame != nil {
			return
		}
		c.frame, c.length, c.init = f.Clone(), length, init
		stored = true
	})
	return
}

// Replace stores a copy of f unconditionally.
func (c *Cache) Replace(f *pulse.Frame, length int, init edge.InitLevel) {
	c.with(func() {
		c.frame, c.length, c.init = f.Clone(), length, init
	})
}

// Snapshot returns a copy of the cached frame, its length and init level.
// ok is false when the cache is empty.
func (c *Cache) Snapshot() (f *pulse.Frame, length int, init edge.InitLevel, ok bool) {
	c.with(func() {
		if c.frame == nil {
			return
		}
		f, length, init, ok = c.frame.Clone(), c.length, c.init, true
	})
	return
}

// Length returns the cached length, 0 when empty.
func (c *Cache) Length() (n int) {
	c.with(func() { n = c.length })
	return
}

// Empty reports whether nothing is cached.
func (c *Cache) Empty() (empty bool) {
	c.with(func() { empty = c.frame == nil })
	return
}

// Clear drops the cached frame.
func (c *Cache) Clear() {
	c.with(func() {
		c.frame, c.length, c.init = nil, 0, edge.Low
	})
}

func edgeInvert(l edge.InitLevel) edge.InitLevel {
	return edge.LevelOf(!l.IsHigh())
}
