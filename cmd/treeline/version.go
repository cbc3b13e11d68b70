package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/treeline"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of treeline",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("treeline version %s\n", strings.TrimSpace(treeline.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
