package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/treeline"
	"github.com/aretw0/treeline/internal/logging"
	"github.com/aretw0/treeline/pkg/domain"
	"github.com/aretw0/treeline/pkg/schema"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full verification session",
	Long: `Loads a tree, runs the targeted, throughput, and exhaustive workloads
against the engine, and prints the verification report. Exits non-zero when
any query disagrees with the reference model.`,
	Run: func(cmd *cobra.Command, args []string) {
		treePath, _ := cmd.Flags().GetString("tree")
		verbose, _ := cmd.Flags().GetBool("verbose")
		jsonMode, _ := cmd.Flags().GetBool("json")
		pretty, _ := cmd.Flags().GetBool("pretty")

		tree, name, err := loadTree(treePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tree: %v\n", err)
			os.Exit(1)
		}

		logger := logging.NewNop()
		if verbose {
			logger = logging.New(slog.LevelDebug)
		}

		v, err := treeline.New(tree, treeline.WithName(name), treeline.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report, err := v.Run(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonMode {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		} else if err := printReport(report, pretty); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
			os.Exit(1)
		}

		if !report.Passed() {
			os.Exit(1)
		}
	},
}

// loadTree resolves the tree to verify: a YAML document when a path is
// given, the built-in canonical tree otherwise.
func loadTree(path string) (domain.Tree, string, error) {
	if path == "" {
		return domain.CanonicalTree(), "canonical", nil
	}

	doc, err := schema.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	tree, err := doc.Tree()
	if err != nil {
		return nil, "", err
	}

	name := doc.Name
	if name == "" {
		name = filepath.Base(path)
	}
	return tree, name, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().Bool("pretty", false, "Render the report with terminal styling")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
}
