package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/treeline/pkg/domain"
)

// reportMarkdown formats a verification report as markdown: a summary line
// per workload, the steady-state throughput figure, and the full mismatch
// list when there is one.
func reportMarkdown(r *domain.Report) string {
	var b strings.Builder

	title := "Verification Report"
	if r.Tree != "" {
		title = fmt.Sprintf("Verification Report: %s", r.Tree)
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if r.Passed() {
		b.WriteString("**PASS**: engine matches the reference model on every input.\n\n")
	} else {
		fmt.Fprintf(&b, "**FAIL**: %d mismatching input(s).\n\n", len(r.Mismatches))
	}

	b.WriteString("| Workload | Passed | Failed |\n")
	b.WriteString("|---|---|---|\n")
	for _, wl := range []domain.WorkloadReport{r.Targeted, r.Throughput, r.Exhaustive} {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", wl.Name, wl.Passed, wl.Failed)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Throughput: %d results in %d cycles (avg %.2f cycles/result, no pipelining)\n\n",
		len(r.Throughput.Outcomes), r.Stats.AggregateCycles, r.Stats.AvgCycles)
	fmt.Fprintf(&b, "Total simulated cycles: %d\n", r.Cycles)

	if len(r.Mismatches) > 0 {
		b.WriteString("\n## Mismatches\n\n")
		b.WriteString("| Input | Expected | Got |\n")
		b.WriteString("|---|---|---|\n")
		for _, m := range r.Mismatches {
			got := m.Got.String()
			if m.TimedOut {
				got = "TIMEOUT"
			}
			fmt.Fprintf(&b, "| %d | %s | %s |\n", m.Input, m.Expected, got)
		}
	}

	return b.String()
}

// printReport writes the report to stdout, optionally styled for the
// terminal.
func printReport(r *domain.Report, pretty bool) error {
	md := reportMarkdown(r)
	if !pretty {
		fmt.Print(md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // detect light/dark background
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(md)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
