package harness

import (
	"github.com/aretw0/treeline/internal/rtl"
	"github.com/aretw0/treeline/pkg/ports"
)

// Clock drives the engine in lock-step and fans each cycle out to trace
// sinks. All simulated time in a session flows through one Clock; there is
// no other scheduler.
type Clock struct {
	eng   *rtl.Engine
	cycle uint64
	sinks []ports.TraceSink
}

// NewClock wraps an engine. Sinks observe every cycle, after outputs settle.
func NewClock(eng *rtl.Engine, sinks ...ports.TraceSink) *Clock {
	return &Clock{eng: eng, sinks: sinks}
}

// Tick advances simulated time by one cycle.
func (c *Clock) Tick() {
	c.eng.Tick()
	c.cycle++
	if len(c.sinks) > 0 {
		snap := c.eng.Snapshot()
		for _, s := range c.sinks {
			s.Observe(c.cycle, snap)
		}
	}
}

// Cycle returns the number of cycles elapsed since construction.
func (c *Clock) Cycle() uint64 {
	return c.cycle
}
