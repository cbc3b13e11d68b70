package ports

import "github.com/aretw0/treeline/pkg/domain"

// TraceSink receives one signal snapshot per simulated clock cycle. A
// waveform writer is the obvious implementation; tests use an in-memory
// recorder. Observe is called after the clock edge, with outputs settled.
type TraceSink interface {
	Observe(cycle uint64, signals domain.Signals)
}
