package ports

import (
	"context"

	"github.com/aretw0/treeline/pkg/domain"
)

// OutcomeObserver is notified of every completed query, labeled by workload.
// Metrics exporters implement this.
type OutcomeObserver interface {
	ObserveOutcome(workload string, outcome domain.QueryOutcome)
}

// ReportStore persists verification reports by ID.
type ReportStore interface {
	// Save persists the report under the given ID, overwriting any
	// previous report with that ID.
	Save(ctx context.Context, id string, report *domain.Report) error

	// Load retrieves a report. Returns domain.ErrReportNotFound if the ID
	// does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored reports.
	List(ctx context.Context) ([]string, error)
}
