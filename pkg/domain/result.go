package domain

// QueryResult is the outcome of resolving one input against a tree.
type QueryResult struct {
	Action Action `json:"action"`
	Depth  int    `json:"depth"` // edges from root to the resolved leaf
	Valid  bool   `json:"valid"` // false: traversal never terminated or indexed out of range
}

// QueryOutcome is one engine query as observed by the harness, paired with
// the reference model's expectation for the same tree and input.
type QueryOutcome struct {
	Input    uint8       `json:"input"`
	Expected QueryResult `json:"expected"`
	Got      Action      `json:"got"`
	Latency  int         `json:"latency"` // cycles from start to the validity pulse
	TimedOut bool        `json:"timed_out"`
	Pass     bool        `json:"pass"`

	// Global clock positions, used by the throughput figures.
	StartCycle uint64 `json:"start_cycle"`
	DoneCycle  uint64 `json:"done_cycle"`
}

// Mismatch records one input where the engine disagreed with the reference
// model (including the timeout-instead-of-action case).
type Mismatch struct {
	Input    uint8  `json:"input"`
	Expected Action `json:"expected"`
	Got      Action `json:"got"`
	TimedOut bool   `json:"timed_out"`
}

// WorkloadReport aggregates one workload's per-query outcomes.
type WorkloadReport struct {
	Name     string         `json:"name"`
	Outcomes []QueryOutcome `json:"outcomes"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
}

// ThroughputStats summarizes the back-to-back workload. AggregateCycles is
// the cycle distance between the first and last completion; the average is
// taken over all-but-first results, matching a steady-state view of an
// engine with no query overlap.
type ThroughputStats struct {
	FirstDone       uint64  `json:"first_done"`
	LastDone        uint64  `json:"last_done"`
	AggregateCycles uint64  `json:"aggregate_cycles"`
	AvgCycles       float64 `json:"avg_cycles_per_result"`
}

// Report is the full result of a verification session.
type Report struct {
	Tree       string          `json:"tree,omitempty"` // descriptive label
	Targeted   WorkloadReport  `json:"targeted"`
	Throughput WorkloadReport  `json:"throughput"`
	Stats      ThroughputStats `json:"throughput_stats"`
	Exhaustive WorkloadReport  `json:"exhaustive"`
	Mismatches []Mismatch      `json:"mismatches,omitempty"`
	Cycles     uint64          `json:"cycles"` // total simulated cycles
}

// Passed reports whether every query in every workload matched the
// reference model.
func (r *Report) Passed() bool {
	return r.Targeted.Failed == 0 && r.Throughput.Failed == 0 && r.Exhaustive.Failed == 0
}
