// Package rtl models the traversal engine cycle-accurately: a synchronous
// state machine over a fixed-capacity node memory, advanced one clock edge
// at a time. Callers drive it exactly like the circuit it stands in for:
// set input signals, call Tick, read registered outputs.
package rtl

import "github.com/aretw0/treeline/pkg/domain"

// state is the engine's FSM state. The enum is deliberately small: the
// engine either waits for a start pulse, resolves exactly one query, or is
// parked on a fault until the next reset.
type state uint8

const (
	stateIdle state = iota
	stateRunning
	stateFault
)

// Engine is the traversal state machine. Exported fields are the signal
// ports of the design: inputs are sampled on each call to Tick, outputs are
// registered and stay stable until the next edge.
//
// Protocol, as seen by a caller:
//   - hold Reset for at least two ticks on initialization;
//   - write every node of the active tree through the load bus, one per
//     tick, then allow one settle tick before the first query;
//   - keep Input stable for at least one tick before pulsing Start for
//     exactly one tick;
//   - poll ActionValid: it pulses for a single tick, exactly depth+1 ticks
//     after the tick that sampled Start, with Action carrying the result.
//
// Pulsing Start while a query is in flight, or changing Input on the same
// tick as Start, is a caller error with unspecified behavior.
type Engine struct {
	// Control inputs.
	Reset bool
	Start bool
	Input uint8

	// Load bus: when LoadEnable is sampled high, LoadData is written to
	// LoadAddr and becomes readable from the next tick on. Writes to
	// addresses beyond the configured capacity are dropped.
	LoadEnable bool
	LoadAddr   uint8
	LoadData   domain.Node

	// Registered outputs. Action is meaningful only on the single tick
	// ActionValid is high.
	Action      domain.Action
	ActionValid bool

	nodes []domain.Node
	state state
	cur   int
	input uint8 // latched on the tick that samples Start
}

// New builds an engine with a node memory of the given capacity. Capacity is
// fixed for the engine's lifetime and clamped to the 8-bit address space.
func New(capacity int) *Engine {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > domain.MaxNodes {
		capacity = domain.MaxNodes
	}
	return &Engine{nodes: make([]domain.Node, capacity)}
}

// Capacity returns the size of the node memory.
func (e *Engine) Capacity() int {
	return len(e.nodes)
}

// Tick advances the engine by one clock edge.
func (e *Engine) Tick() {
	if e.Reset {
		e.state = stateIdle
		e.cur = 0
		e.Action = domain.ActionNone
		e.ActionValid = false
		return
	}

	// The validity pulse lasts one cycle.
	e.ActionValid = false

	if e.LoadEnable && int(e.LoadAddr) < len(e.nodes) {
		e.nodes[e.LoadAddr] = e.LoadData
	}

	switch e.state {
	case stateIdle:
		if e.Start {
			// One cycle of fixed overhead: the first node is examined on
			// the next edge.
			e.state = stateRunning
			e.cur = 0
			e.input = e.Input
		}

	case stateRunning:
		if e.cur >= len(e.nodes) {
			// Dangling child index. Park until reset; the caller observes
			// the condition as a poll timeout.
			e.state = stateFault
			return
		}
		n := e.nodes[e.cur]
		if n.IsLeaf {
			e.Action = n.Action
			e.ActionValid = true
			e.state = stateIdle
			return
		}
		cond := e.input > n.Threshold
		if n.LessThan {
			cond = e.input < n.Threshold
		}
		if cond {
			e.cur = int(n.LeftIdx)
		} else {
			e.cur = int(n.RightIdx)
		}

	case stateFault:
		// Held until reset.
	}
}

// Snapshot captures the engine's boundary signals for trace sinks.
func (e *Engine) Snapshot() domain.Signals {
	return domain.Signals{
		Reset:       e.Reset,
		Start:       e.Start,
		Input:       e.Input,
		LoadEnable:  e.LoadEnable,
		LoadAddr:    e.LoadAddr,
		Action:      e.Action,
		ActionValid: e.ActionValid,
	}
}
