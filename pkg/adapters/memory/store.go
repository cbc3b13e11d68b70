// Package memory provides in-process adapters for the verification ports:
// a report store and a trace recorder. Both are primarily used by tests and
// short-lived CLI sessions.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/treeline/pkg/domain"
)

// Store implements ports.ReportStore in memory. Safe for concurrent use.
type Store struct {
	data map[string]*domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory report store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Report),
	}
}

// Save persists the report in memory.
func (s *Store) Save(ctx context.Context, id string, report *domain.Report) error {
	copied := cloneReport(report)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load retrieves a report.
func (s *Store) Load(ctx context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return cloneReport(report), nil
}

// Delete removes a report.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored report IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// cloneReport copies a report so callers cannot mutate stored state through
// retained pointers or slices.
func cloneReport(r *domain.Report) *domain.Report {
	copied := *r
	copied.Targeted.Outcomes = append([]domain.QueryOutcome(nil), r.Targeted.Outcomes...)
	copied.Throughput.Outcomes = append([]domain.QueryOutcome(nil), r.Throughput.Outcomes...)
	copied.Exhaustive.Outcomes = append([]domain.QueryOutcome(nil), r.Exhaustive.Outcomes...)
	copied.Mismatches = append([]domain.Mismatch(nil), r.Mismatches...)
	return &copied
}
