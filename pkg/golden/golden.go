// Package golden is the pure reference model for tree traversal. It resolves
// a query with the exact comparison semantics the engine implements, without
// any notion of clocks or latency, and serves as the oracle every engine
// result is checked against. It is also used generatively: expectations for
// any input are derived from the tree itself, never hand-computed.
package golden

import "github.com/aretw0/treeline/pkg/domain"

// minStepCap is the floor for the traversal step bound. It matches the
// poll-bound era default, so shallow trees keep their historical behavior.
const minStepCap = 64

type config struct {
	stepCap int
}

// Option configures an evaluation.
type Option func(*config)

// WithStepCap overrides the traversal step bound used to detect trees that
// never terminate. The cap exists to catch cycles; it is not a statement
// about legal tree depth.
func WithStepCap(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.stepCap = n
		}
	}
}

// DefaultStepCap returns the step bound used when none is configured:
// proportional to the tree so legitimately deep trees are not misreported
// as malformed, with a floor of 64.
func DefaultStepCap(nodes int) int {
	cap := 4 * nodes
	if cap < minStepCap {
		cap = minStepCap
	}
	return cap
}

// Evaluate walks the tree from node 0 for the given input. At every internal
// node it computes `input < threshold` (LessThan) or `input > threshold` and
// descends left on true, right on false, until a leaf resolves the action.
//
// Valid is false when the walk dereferences an out-of-range index or exceeds
// the step cap (a cycle reachable from the root). No error is returned: a
// malformed tree is a data condition, not a caller mistake.
func Evaluate(tree domain.Tree, input uint8, opts ...Option) domain.QueryResult {
	cfg := config{stepCap: DefaultStepCap(len(tree))}
	for _, opt := range opts {
		opt(&cfg)
	}

	idx := 0
	for step := 0; step < cfg.stepCap; step++ {
		if idx < 0 || idx >= len(tree) {
			return domain.QueryResult{}
		}
		n := tree[idx]
		if n.IsLeaf {
			return domain.QueryResult{Action: n.Action, Depth: step, Valid: true}
		}
		cond := input > n.Threshold
		if n.LessThan {
			cond = input < n.Threshold
		}
		if cond {
			idx = int(n.LeftIdx)
		} else {
			idx = int(n.RightIdx)
		}
	}

	// Step cap exhausted: probable cycle.
	return domain.QueryResult{}
}
