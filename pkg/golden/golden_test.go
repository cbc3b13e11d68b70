package golden_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/treeline/pkg/domain"
	"github.com/aretw0/treeline/pkg/golden"
)

func TestEvaluate_CanonicalTree(t *testing.T) {
	tree := domain.CanonicalTree()

	cases := []struct {
		input  uint8
		action domain.Action
		depth  int
	}{
		{4, domain.ActionBuy, 5},      // 4<128, <64, <32, <16, <8 -> node 13
		{10, domain.ActionCancel, 5},  // fails <8 -> node 14
		{20, domain.ActionSell, 4},    // fails <16 -> node 12
		{40, domain.ActionCancel, 3},  // fails <32 -> node 8
		{80, domain.ActionSell, 2},    // fails <64 -> node 4
		{140, domain.ActionBuy, 3},    // right subtree, <160 -> node 9
		{170, domain.ActionSell, 3},   // fails <160 -> node 10
		{200, domain.ActionNone, 2},   // fails <192 -> node 6
		{0, domain.ActionBuy, 5},      // leftmost path
		{127, domain.ActionSell, 2},   // boundary: <128 true, <64 false -> node 4
		{128, domain.ActionBuy, 3},    // boundary: <128 false, <192, <160 -> node 9
		{255, domain.ActionNone, 2},   // rightmost path
	}

	for _, tc := range cases {
		r := golden.Evaluate(tree, tc.input)
		assert.True(t, r.Valid, "input %d should resolve", tc.input)
		assert.Equal(t, tc.action, r.Action, "input %d action", tc.input)
		assert.Equal(t, tc.depth, r.Depth, "input %d depth", tc.input)
	}
}

func TestEvaluate_GreaterThanComparator(t *testing.T) {
	// Root compares input > 100 instead of <.
	tree := domain.Tree{
		domain.Branch(100, false, 1, 2),
		domain.Leaf(domain.ActionBuy),
		domain.Leaf(domain.ActionSell),
	}

	r := golden.Evaluate(tree, 101)
	assert.True(t, r.Valid)
	assert.Equal(t, domain.ActionBuy, r.Action)

	// Equal to the threshold is not greater: falls right.
	r = golden.Evaluate(tree, 100)
	assert.True(t, r.Valid)
	assert.Equal(t, domain.ActionSell, r.Action)
}

func TestEvaluate_MalformedTrees(t *testing.T) {
	t.Run("Cycle", func(t *testing.T) {
		// 0 -> 1 -> 0 for any input below 200.
		tree := domain.Tree{
			domain.Branch(200, true, 1, 2),
			domain.Branch(200, true, 0, 2),
			domain.Leaf(domain.ActionNone),
		}

		r := golden.Evaluate(tree, 10)
		assert.False(t, r.Valid)

		// Inputs that avoid the cycle still resolve.
		r = golden.Evaluate(tree, 250)
		assert.True(t, r.Valid)
		assert.Equal(t, domain.ActionNone, r.Action)
	})

	t.Run("Out Of Range Index", func(t *testing.T) {
		tree := domain.Tree{
			domain.Branch(128, true, 40, 1),
			domain.Leaf(domain.ActionSell),
		}

		r := golden.Evaluate(tree, 0) // takes the dangling left edge
		assert.False(t, r.Valid)

		r = golden.Evaluate(tree, 200)
		assert.True(t, r.Valid)
	})

	t.Run("Empty Tree", func(t *testing.T) {
		r := golden.Evaluate(domain.Tree{}, 0)
		assert.False(t, r.Valid)
	})
}

func TestEvaluate_StepCap(t *testing.T) {
	tree := domain.CanonicalTree()

	// Depth-5 resolution needs six steps; a cap of five cuts it off.
	r := golden.Evaluate(tree, 4, golden.WithStepCap(5))
	assert.False(t, r.Valid)

	r = golden.Evaluate(tree, 4, golden.WithStepCap(6))
	assert.True(t, r.Valid)
	assert.Equal(t, 5, r.Depth)
}

func TestDefaultStepCap(t *testing.T) {
	assert.Equal(t, 64, golden.DefaultStepCap(15))  // floor applies
	assert.Equal(t, 1024, golden.DefaultStepCap(256))
}
