package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubesheet-planner/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "holepath %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
