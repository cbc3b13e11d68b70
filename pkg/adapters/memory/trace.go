package memory

import (
	"sync"

	"github.com/aretw0/treeline/pkg/domain"
)

// TraceSample is one recorded clock cycle.
type TraceSample struct {
	Cycle   uint64
	Signals domain.Signals
}

// TraceRecorder implements ports.TraceSink by retaining every observed
// cycle. Intended for tests and debugging; a long session records one
// sample per simulated cycle.
type TraceRecorder struct {
	mu      sync.Mutex
	samples []TraceSample
}

// NewTraceRecorder creates an empty recorder.
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{}
}

// Observe records one cycle.
func (r *TraceRecorder) Observe(cycle uint64, signals domain.Signals) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, TraceSample{Cycle: cycle, Signals: signals})
}

// Samples returns a copy of everything recorded so far.
func (r *TraceRecorder) Samples() []TraceSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TraceSample(nil), r.samples...)
}

// ValidPulses returns the cycles on which action_valid was observed high.
func (r *TraceRecorder) ValidPulses() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cycles []uint64
	for _, s := range r.samples {
		if s.Signals.ActionValid {
			cycles = append(cycles, s.Cycle)
		}
	}
	return cycles
}
