package domain

// Tree is an ordered node table addressed by position. Node 0 is the root.
type Tree []Node

// MaxNodes is the address space of the engine's node memory. Child indices
// are 8-bit, so no tree can ever reference beyond this.
const MaxNodes = 256

// CanonicalTree returns the 15-node mixed-depth tree used throughout the
// test suites, with leaves at depths 2 through 5:
//
//	                    [0] input < 128?
//	                   /                \
//	             [1] < 64              [2] < 192
//	            /       \             /         \
//	        [3] < 32   [4]SELL    [5] < 160   [6]NONE     depth 2
//	       /      \                /       \
//	   [7]<16   [8]CANCEL     [9]BUY    [10]SELL          depth 3
//	   /     \
//	[11]<8  [12]SELL                                      depth 4
//	 /    \
//	[13]BUY [14]CANCEL                                    depth 5
func CanonicalTree() Tree {
	return Tree{
		Branch(128, true, 1, 2),
		Branch(64, true, 3, 4),
		Branch(192, true, 5, 6),
		Branch(32, true, 7, 8),
		Leaf(ActionSell),
		Branch(160, true, 9, 10),
		Leaf(ActionNone),
		Branch(16, true, 11, 12),
		Leaf(ActionCancel),
		Leaf(ActionBuy),
		Leaf(ActionSell),
		Branch(8, true, 13, 14),
		Leaf(ActionSell),
		Leaf(ActionBuy),
		Leaf(ActionCancel),
	}
}
