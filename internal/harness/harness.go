// Package harness orchestrates differential verification of the traversal
// engine: it drives reset and load over the signal-level protocol, issues
// queries one at a time, and checks every observed action against the
// reference model. Three workloads share the same per-query procedure:
// targeted spot inputs, back-to-back throughput, and the exhaustive sweep
// over every 8-bit input.
package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/treeline/internal/logging"
	"github.com/aretw0/treeline/internal/rtl"
	"github.com/aretw0/treeline/pkg/domain"
	"github.com/aretw0/treeline/pkg/golden"
	"github.com/aretw0/treeline/pkg/ports"
)

// DefaultPollBound is how many cycles a query may run before the harness
// records a timeout.
const DefaultPollBound = 20

// Workload names used in reports and metrics labels.
const (
	WorkloadTargeted   = "targeted"
	WorkloadThroughput = "throughput"
	WorkloadExhaustive = "exhaustive"
)

// SpotInputs is the curated targeted-workload input set: boundary values
// around every threshold of the canonical tree plus the extremes.
func SpotInputs() []uint8 {
	return []uint8{4, 10, 20, 40, 80, 140, 170, 200, 0, 127, 128, 255}
}

// ThroughputInputs is the back-to-back workload input sequence, mixing
// depths so the steady-state figure reflects the latency pattern.
func ThroughputInputs() []uint8 {
	return []uint8{4, 80, 140, 200, 10, 20, 170, 40}
}

// Harness owns one engine, one clock, and one loaded tree for the duration
// of a verification session. It is not safe for concurrent use; run one
// session per Harness.
type Harness struct {
	tree     domain.Tree
	eng      *rtl.Engine
	clk      *Clock
	logger   *slog.Logger
	observer ports.OutcomeObserver

	pollBound int
	stepCap   int // 0 means the reference model's default

	loaded bool
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets a structured logger for workload progress.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithPollBound overrides the per-query timeout, in cycles.
func WithPollBound(n int) Option {
	return func(h *Harness) {
		if n > 0 {
			h.pollBound = n
		}
	}
}

// WithStepCap overrides the reference model's traversal step bound.
func WithStepCap(n int) Option {
	return func(h *Harness) {
		h.stepCap = n
	}
}

// WithTraceSink attaches a per-cycle signal observer (e.g. a waveform
// writer).
func WithTraceSink(sink ports.TraceSink) Option {
	return func(h *Harness) {
		if sink != nil {
			h.clk.sinks = append(h.clk.sinks, sink)
		}
	}
}

// WithObserver attaches a per-query outcome observer (e.g. metrics).
func WithObserver(obs ports.OutcomeObserver) Option {
	return func(h *Harness) {
		h.observer = obs
	}
}

// New builds a harness for the given tree. The engine's node memory is
// sized to the tree.
func New(tree domain.Tree, opts ...Option) (*Harness, error) {
	if len(tree) == 0 {
		return nil, domain.ErrEmptyTree
	}
	if len(tree) > domain.MaxNodes {
		return nil, fmt.Errorf("%w: %d nodes exceed the %d-entry address space",
			domain.ErrMalformedTree, len(tree), domain.MaxNodes)
	}

	eng := rtl.New(len(tree))
	h := &Harness{
		tree:      tree,
		eng:       eng,
		clk:       NewClock(eng),
		logger:    logging.NewNop(),
		pollBound: DefaultPollBound,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Initialize holds reset for two cycles, deasserts it, and allows one
// settle cycle. It must run before Load.
func (h *Harness) Initialize() {
	h.eng.Reset = true
	h.eng.Start = false
	h.eng.LoadEnable = false
	h.clk.Tick()
	h.clk.Tick()
	h.eng.Reset = false
	h.clk.Tick()
}

// Load writes every node in address order over the load bus, one node per
// cycle, then allows one settle cycle. No query may be in flight.
func (h *Harness) Load() {
	for i, n := range h.tree {
		h.eng.LoadEnable = true
		h.eng.LoadAddr = uint8(i)
		h.eng.LoadData = n
		h.clk.Tick()
	}
	h.eng.LoadEnable = false
	h.clk.Tick()
	h.loaded = true

	h.logger.Debug("tree loaded", "nodes", len(h.tree), "cycle", h.clk.Cycle())
}

// golden evaluates the reference model with the harness's configuration.
func (h *Harness) golden(input uint8) domain.QueryResult {
	if h.stepCap > 0 {
		return golden.Evaluate(h.tree, input, golden.WithStepCap(h.stepCap))
	}
	return golden.Evaluate(h.tree, input)
}

// RunQuery executes the shared per-query procedure: settle the input for
// one cycle, pulse start for one cycle, then poll the validity output up to
// the poll bound. The outcome carries the reference expectation; Pass means
// the engine agreed with it, including the malformed-tree case where
// agreement means timing out rather than producing an action.
func (h *Harness) RunQuery(input uint8) domain.QueryOutcome {
	expected := h.golden(input)

	h.eng.Input = input
	h.clk.Tick() // settle

	startCycle := h.clk.Cycle()
	h.eng.Start = true
	h.clk.Tick()
	h.eng.Start = false

	out := domain.QueryOutcome{
		Input:      input,
		Expected:   expected,
		StartCycle: startCycle,
		TimedOut:   true,
	}

	for c := 1; c <= h.pollBound; c++ {
		h.clk.Tick()
		if h.eng.ActionValid {
			out.Got = h.eng.Action
			out.Latency = c
			out.DoneCycle = h.clk.Cycle()
			out.TimedOut = false
			break
		}
	}

	if expected.Valid {
		out.Pass = !out.TimedOut && out.Got == expected.Action
	} else {
		// A malformed resolution must never surface a plausible action.
		out.Pass = out.TimedOut
	}

	// A query that enters a malformed region can leave the engine running
	// or parked on a fault. Recover before the next query so one bad input
	// cannot poison the rest of the workload.
	if out.TimedOut {
		h.recover()
	}

	return out
}

// recover resets and reloads after a timed-out query.
func (h *Harness) recover() {
	h.Initialize()
	h.Load()
}

func (h *Harness) observe(workload string, out domain.QueryOutcome) {
	if h.observer != nil {
		h.observer.ObserveOutcome(workload, out)
	}
}

// Targeted runs the per-query procedure over a curated input set.
func (h *Harness) Targeted(inputs []uint8) domain.WorkloadReport {
	report := domain.WorkloadReport{Name: WorkloadTargeted}
	for _, input := range inputs {
		out := h.RunQuery(input)
		h.observe(WorkloadTargeted, out)
		report.Outcomes = append(report.Outcomes, out)
		if out.Pass {
			report.Passed++
		} else {
			report.Failed++
			h.logger.Warn("targeted query failed",
				"input", input,
				"expected", out.Expected.Action.String(),
				"got", out.Got.String(),
				"timed_out", out.TimedOut)
		}
	}
	return report
}

// Throughput runs the input sequence back-to-back with no idle beyond the
// mandated settle cycle and derives the steady-state figure from the
// completion cycles of all-but-first queries.
func (h *Harness) Throughput(inputs []uint8) (domain.WorkloadReport, domain.ThroughputStats) {
	report := domain.WorkloadReport{Name: WorkloadThroughput}
	var stats domain.ThroughputStats

	for _, input := range inputs {
		out := h.RunQuery(input)
		h.observe(WorkloadThroughput, out)
		report.Outcomes = append(report.Outcomes, out)
		if out.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
		if !out.TimedOut {
			if stats.FirstDone == 0 {
				stats.FirstDone = out.DoneCycle
			}
			stats.LastDone = out.DoneCycle
		}
	}

	stats.AggregateCycles = stats.LastDone - stats.FirstDone
	if n := len(inputs); n > 1 {
		stats.AvgCycles = float64(stats.AggregateCycles) / float64(n-1)
	}
	return report, stats
}

// Exhaustive runs every input in [0,255] and collects each mismatch.
func (h *Harness) Exhaustive() (domain.WorkloadReport, []domain.Mismatch) {
	report := domain.WorkloadReport{Name: WorkloadExhaustive}
	var mismatches []domain.Mismatch

	for input := 0; input < 256; input++ {
		out := h.RunQuery(uint8(input))
		h.observe(WorkloadExhaustive, out)
		report.Outcomes = append(report.Outcomes, out)
		if out.Pass {
			report.Passed++
			continue
		}
		report.Failed++
		mismatches = append(mismatches, domain.Mismatch{
			Input:    uint8(input),
			Expected: out.Expected.Action,
			Got:      out.Got,
			TimedOut: out.TimedOut,
		})
	}
	return report, mismatches
}

// Run executes a full session: initialization, load, then the targeted,
// throughput and exhaustive workloads in order. Defects are recorded, never
// fatal; the context is only checked between workloads since no individual
// query can block.
func (h *Harness) Run(ctx context.Context) (*domain.Report, error) {
	h.Initialize()
	h.Load()

	report := &domain.Report{}

	h.logger.Info("running targeted workload", "queries", len(SpotInputs()))
	report.Targeted = h.Targeted(SpotInputs())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.logger.Info("running throughput workload", "queries", len(ThroughputInputs()))
	report.Throughput, report.Stats = h.Throughput(ThroughputInputs())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.logger.Info("running exhaustive workload", "queries", 256)
	var mismatches []domain.Mismatch
	report.Exhaustive, mismatches = h.Exhaustive()

	// The report's mismatch list enumerates every failing input across all
	// workloads, not only the exhaustive sweep.
	for _, wl := range []domain.WorkloadReport{report.Targeted, report.Throughput} {
		for _, out := range wl.Outcomes {
			if !out.Pass {
				report.Mismatches = append(report.Mismatches, domain.Mismatch{
					Input:    out.Input,
					Expected: out.Expected.Action,
					Got:      out.Got,
					TimedOut: out.TimedOut,
				})
			}
		}
	}
	report.Mismatches = append(report.Mismatches, mismatches...)
	report.Cycles = h.clk.Cycle()

	h.logger.Info("session complete",
		"passed", report.Passed(),
		"mismatches", len(report.Mismatches),
		"cycles", report.Cycles)

	return report, nil
}
