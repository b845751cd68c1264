package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubesheet-planner/internal/hole"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [holes]",
	Short: "Show the grid position of every hole",
	Long:  "Resolve each hole to a column, row and side and list the holes that could not be placed.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	in, err := loadInput(args)
	if err != nil {
		return err
	}
	snap := in.state.Snapshot()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%-16s %6s %6s %4s %-10s %10s %10s\n", "ID", "Col", "Row", "Side", "Method", "X", "Y")
	counts := map[hole.Method]int{}
	for _, gp := range snap.Positions.Sorted() {
		counts[gp.Method]++
		fmt.Fprintf(out, "%-16s %6d %6d %4s %-10s %10.2f %10.2f\n",
			gp.ID, gp.Column, gp.Row, gp.Side, gp.Method, gp.Center.X, gp.Center.Y)
	}

	fmt.Fprintf(out, "\nResolved: %d (explicit %d, strict %d, loose %d, estimated %d)\n",
		len(snap.Positions),
		counts[hole.MethodExplicit], counts[hole.MethodStrict],
		counts[hole.MethodLoose], counts[hole.MethodEstimated])

	if len(snap.Diagnostics) > 0 {
		fmt.Fprintf(out, "Dropped: %d\n", len(snap.Diagnostics))
		for _, d := range snap.Diagnostics {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}
	return nil
}
