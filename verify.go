package treeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/treeline/internal/harness"
	"github.com/aretw0/treeline/pkg/domain"
	"github.com/aretw0/treeline/pkg/golden"
	"github.com/aretw0/treeline/pkg/ports"
)

// Verifier is the high-level entry point: one tree, one engine, one
// verification session per Run.
type Verifier struct {
	tree        domain.Tree
	name        string
	logger      *slog.Logger
	harnessOpts []harness.Option
}

// Option defines a functional option for configuring the Verifier.
type Option func(*Verifier)

// WithLogger sets a structured logger for session progress.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithName labels the tree in the resulting report.
func WithName(name string) Option {
	return func(v *Verifier) {
		v.name = name
	}
}

// WithPollBound overrides the per-query timeout, in cycles.
func WithPollBound(n int) Option {
	return func(v *Verifier) {
		v.harnessOpts = append(v.harnessOpts, harness.WithPollBound(n))
	}
}

// WithStepCap overrides the reference model's traversal step bound.
func WithStepCap(n int) Option {
	return func(v *Verifier) {
		v.harnessOpts = append(v.harnessOpts, harness.WithStepCap(n))
	}
}

// WithTraceSink attaches a per-cycle signal observer.
func WithTraceSink(sink ports.TraceSink) Option {
	return func(v *Verifier) {
		v.harnessOpts = append(v.harnessOpts, harness.WithTraceSink(sink))
	}
}

// WithObserver attaches a per-query outcome observer (e.g.
// observability.Metrics).
func WithObserver(obs ports.OutcomeObserver) Option {
	return func(v *Verifier) {
		v.harnessOpts = append(v.harnessOpts, harness.WithObserver(obs))
	}
}

// New builds a Verifier for the given tree.
func New(tree domain.Tree, opts ...Option) (*Verifier, error) {
	if len(tree) == 0 {
		return nil, domain.ErrEmptyTree
	}

	v := &Verifier{
		tree:   tree,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Run executes a full verification session and returns its report. Each
// call builds a fresh engine and harness, so repeated runs are independent
// and a Verifier can be reused.
func (v *Verifier) Run(ctx context.Context) (*domain.Report, error) {
	opts := append([]harness.Option{harness.WithLogger(v.logger)}, v.harnessOpts...)
	h, err := harness.New(v.tree, opts...)
	if err != nil {
		return nil, err
	}

	report, err := h.Run(ctx)
	if err != nil {
		return nil, err
	}
	report.Tree = v.name
	return report, nil
}

// Evaluate resolves one input against a tree using the reference model
// alone. It is a convenience re-export for callers that only need the
// oracle.
func Evaluate(tree domain.Tree, input uint8) domain.QueryResult {
	return golden.Evaluate(tree, input)
}
