package domain

// Node is one entry in the decision tree table. A node is either an internal
// decision point (threshold comparison selecting a child index) or a leaf
// carrying a final action. Children are addressed by table index, never by
// pointer: the engine requires a dense, fixed-size node memory to keep its
// latency bounded.
type Node struct {
	IsLeaf bool `json:"leaf" yaml:"leaf"`

	// Branch fields, meaningful only when IsLeaf is false.
	Threshold uint8 `json:"threshold" yaml:"threshold"`
	LessThan  bool  `json:"less_than" yaml:"less_than"` // true: input < threshold, false: input > threshold
	LeftIdx   uint8 `json:"left" yaml:"left"`
	RightIdx  uint8 `json:"right" yaml:"right"`

	// Leaf field, meaningful only when IsLeaf is true.
	Action Action `json:"action" yaml:"action"`
}

// Branch builds an internal node comparing input < threshold (lessThan true)
// or input > threshold (lessThan false), routing to left on a true condition.
func Branch(threshold uint8, lessThan bool, left, right uint8) Node {
	return Node{
		Threshold: threshold,
		LessThan:  lessThan,
		LeftIdx:   left,
		RightIdx:  right,
	}
}

// Leaf builds a terminal node carrying the final action.
func Leaf(action Action) Node {
	return Node{IsLeaf: true, Action: action}
}
