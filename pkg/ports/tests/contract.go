package tests

import (
	"context"
	"testing"

	"github.com/aretw0/treeline/pkg/domain"
	"github.com/aretw0/treeline/pkg/ports"
)

// ReportStoreContractTest is a reusable suite verifying that an adapter
// complies with ports.ReportStore. Adapters run it against a fresh, empty
// store.
func ReportStoreContractTest(t *testing.T, store ports.ReportStore) {
	t.Helper()
	ctx := context.Background()

	report := &domain.Report{
		Tree: "canonical",
		Exhaustive: domain.WorkloadReport{
			Name:   "exhaustive",
			Passed: 256,
		},
		Cycles: 1234,
	}

	t.Run("Load_NotFound", func(t *testing.T) {
		if _, err := store.Load(ctx, "missing"); err != domain.ErrReportNotFound {
			t.Errorf("expected ErrReportNotFound, got %v", err)
		}
	})

	t.Run("Save_And_Load", func(t *testing.T) {
		if err := store.Save(ctx, "run-1", report); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		loaded, err := store.Load(ctx, "run-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.Tree != report.Tree {
			t.Errorf("tree label mismatch: got %q, want %q", loaded.Tree, report.Tree)
		}
		if loaded.Exhaustive.Passed != report.Exhaustive.Passed {
			t.Errorf("exhaustive passed mismatch: got %d, want %d",
				loaded.Exhaustive.Passed, report.Exhaustive.Passed)
		}
		if loaded.Cycles != report.Cycles {
			t.Errorf("cycles mismatch: got %d, want %d", loaded.Cycles, report.Cycles)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := *report
		updated.Cycles = 9999
		if err := store.Save(ctx, "run-1", &updated); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		loaded, err := store.Load(ctx, "run-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.Cycles != 9999 {
			t.Errorf("expected overwritten cycles, got %d", loaded.Cycles)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, "run-2", report); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for _, want := range []string{"run-1", "run-2"} {
			if !lookup[want] {
				t.Errorf("report %s missing from list", want)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "run-1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "run-1"); err != domain.ErrReportNotFound {
			t.Errorf("expected ErrReportNotFound after delete, got %v", err)
		}
	})
}
