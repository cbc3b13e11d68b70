package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treeline",
	Short: "Treeline differentially verifies a fixed-latency decision tree engine",
	Long: `Treeline models a decision tree traversal engine cycle-accurately and
cross-checks every result against a pure reference walker, over targeted,
throughput, and exhaustive workloads.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("tree", "", "Path to a YAML tree document (default: built-in canonical tree)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log session progress to stderr")
}
