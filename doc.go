/*
Package treeline differentially verifies a fixed-latency decision tree
engine. It models the engine cycle-accurately, as a synchronous state
machine over a dense, fixed-capacity node memory, and cross-checks every
result
against a pure reference walker, over targeted, throughput, and exhaustive
workloads.

# Concept

The engine classifies an 8-bit input into one of four actions (NONE, BUY,
SELL, CANCEL) by walking a binary decision tree held in an addressable node
table. The walk costs one clock cycle per edge plus one cycle of fixed
overhead, so the result is announced by a single-cycle validity pulse
exactly depth+1 cycles after the start pulse. The reference model resolves
the same tree and input with no clock at all; any disagreement between the
two is a defect, and the verification report enumerates every mismatching
input.

# Usage

Build a Verifier around a tree and run it. The report carries per-query
outcomes, throughput figures, and the mismatch list.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/treeline"
		"github.com/aretw0/treeline/pkg/domain"
	)

	func main() {
		v, err := treeline.New(domain.CanonicalTree())
		if err != nil {
			log.Fatal(err)
		}

		report, err := v.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		if report.Passed() {
			fmt.Println("engine matches the reference model on all inputs")
		} else {
			for _, m := range report.Mismatches {
				fmt.Printf("input %d: expected %s, got %s\n", m.Input, m.Expected, m.Got)
			}
		}
	}

Trees can also be loaded from YAML documents via the schema package, and
reports persisted through the memory or redis adapters.
*/
package treeline
