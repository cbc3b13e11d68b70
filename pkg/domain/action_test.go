package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/treeline/pkg/domain"
)

func TestAction_String(t *testing.T) {
	assert.Equal(t, "NONE", domain.ActionNone.String())
	assert.Equal(t, "BUY", domain.ActionBuy.String())
	assert.Equal(t, "SELL", domain.ActionSell.String())
	assert.Equal(t, "CANCEL", domain.ActionCancel.String())
}

func TestParseAction(t *testing.T) {
	t.Run("Case Insensitive", func(t *testing.T) {
		a, err := domain.ParseAction("buy")
		assert.NoError(t, err)
		assert.Equal(t, domain.ActionBuy, a)

		a, err = domain.ParseAction(" Cancel ")
		assert.NoError(t, err)
		assert.Equal(t, domain.ActionCancel, a)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := domain.ParseAction("HOLD")
		assert.Error(t, err)
	})
}

func TestAction_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(domain.ActionSell)
	assert.NoError(t, err)
	assert.Equal(t, `"SELL"`, string(data))

	var a domain.Action
	assert.NoError(t, json.Unmarshal(data, &a))
	assert.Equal(t, domain.ActionSell, a)
}

func TestCanonicalTree_Shape(t *testing.T) {
	tree := domain.CanonicalTree()
	assert.Len(t, tree, 15)

	root := tree[0]
	assert.False(t, root.IsLeaf)
	assert.Equal(t, uint8(128), root.Threshold)
	assert.True(t, root.LessThan)
	assert.Equal(t, uint8(1), root.LeftIdx)
	assert.Equal(t, uint8(2), root.RightIdx)
}
