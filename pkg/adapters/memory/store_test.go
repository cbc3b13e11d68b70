package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/treeline/pkg/adapters/memory"
	"github.com/aretw0/treeline/pkg/domain"
	"github.com/aretw0/treeline/pkg/ports/tests"
)

func TestStore_Contract(t *testing.T) {
	tests.ReportStoreContractTest(t, memory.NewStore())
}

func TestStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	report := &domain.Report{
		Mismatches: []domain.Mismatch{{Input: 7, Expected: domain.ActionBuy}},
	}
	require.NoError(t, store.Save(ctx, "run", report))

	// Mutating the caller's copy must not affect the stored report.
	report.Mismatches[0].Input = 99

	loaded, err := store.Load(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, uint8(7), loaded.Mismatches[0].Input)
}
