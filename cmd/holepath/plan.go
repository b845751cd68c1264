package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tubesheet-planner/internal/app"
	"tubesheet-planner/internal/holeio"
)

var (
	planFormat string
	planOut    string
)

var planCmd = &cobra.Command{
	Use:   "plan [holes]",
	Short: "Print the inspection order",
	Long:  "Plan the visiting order of all resolvable holes with the selected strategy.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planFormat, "format", "f", "text", "output format: text, json or csv")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "write to file instead of stdout")
}

func runPlan(cmd *cobra.Command, args []string) error {
	in, err := loadInput(args)
	if err != nil {
		return err
	}

	return withOutput(cmd, planOut, func(w io.Writer) error {
		snap := in.state.Snapshot()
		switch strings.ToLower(planFormat) {
		case "json":
			return holeio.WriteJSON(w, planDocument(snap, false))
		case "csv":
			return holeio.WriteOrderCSV(w, snap.Plan.Order, snap.Positions)
		case "text":
			return writePlanText(w, snap)
		default:
			return fmt.Errorf("unknown format %q", planFormat)
		}
	})
}

func planDocument(snap app.Snapshot, withSegments bool) holeio.PlanDocument {
	doc := holeio.PlanDocument{
		Strategy: snap.Strategy,
		Holes:    len(snap.Plan.Order),
		Order:    snap.Plan.Order,
	}
	for _, d := range snap.Diagnostics {
		doc.Dropped = append(doc.Dropped, d.ID)
	}
	if withSegments {
		doc.Segments = snap.Segments
	}
	return doc
}

func writePlanText(w io.Writer, snap app.Snapshot) error {
	fmt.Fprintf(w, "Strategy: %s\n", snap.Strategy)
	fmt.Fprintf(w, "Holes: %d (dropped %d)\n\n", len(snap.Plan.Order), len(snap.Diagnostics))

	if len(snap.Plan.Groups) > 0 {
		for _, g := range snap.Plan.Groups {
			dir := "->"
			if g.Reversed {
				dir = "<-"
			}
			units := make([]string, len(g.Pairs))
			for i, p := range g.Pairs {
				units[i] = p.String()
			}
			fmt.Fprintf(w, "%s row %3d %s %s\n", g.Sector, g.Row, dir, strings.Join(units, " "))
		}
		fmt.Fprintln(w)
	}

	for i, id := range snap.Plan.Order {
		gp := snap.Positions[id]
		if _, err := fmt.Fprintf(w, "%6d  %-16s C%03d R%03d %s\n", i+1, id, gp.Column, gp.Row, gp.Side); err != nil {
			return err
		}
	}
	return nil
}

// withOutput runs write against stdout or the named file.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
