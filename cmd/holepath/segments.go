package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tubesheet-planner/internal/holeio"
	"tubesheet-planner/internal/segment"
)

var (
	segmentsFormat  string
	segmentsOut     string
	segmentsThrough int
)

var segmentsCmd = &cobra.Command{
	Use:   "segments [holes]",
	Short: "Print the path segments",
	Long:  "Split the planned path into typed segments with distances and print a summary.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSegments,
}

func init() {
	rootCmd.AddCommand(segmentsCmd)

	segmentsCmd.Flags().StringVarP(&segmentsFormat, "format", "f", "text", "output format: text, json or csv")
	segmentsCmd.Flags().StringVarP(&segmentsOut, "out", "o", "", "write to file instead of stdout")
	segmentsCmd.Flags().IntVar(&segmentsThrough, "through", 0, "mark progress through this sequence number")
}

func runSegments(cmd *cobra.Command, args []string) error {
	in, err := loadInput(args)
	if err != nil {
		return err
	}
	if segmentsThrough > 0 {
		if err := in.state.Advance(segmentsThrough); err != nil {
			return err
		}
	}

	return withOutput(cmd, segmentsOut, func(w io.Writer) error {
		snap := in.state.Snapshot()
		switch strings.ToLower(segmentsFormat) {
		case "json":
			return holeio.WriteJSON(w, planDocument(snap, true))
		case "csv":
			return holeio.WriteSegmentsCSV(w, snap.Segments)
		case "text":
			writeSegmentsText(w, snap.Segments)
			return nil
		default:
			return fmt.Errorf("unknown format %q", segmentsFormat)
		}
	})
}

func writeSegmentsText(w io.Writer, segments []segment.PathSegment) {
	fmt.Fprintf(w, "%6s %-16s %-16s %-14s %10s %5s\n", "Seq", "From", "To", "Tag", "Distance", "Snake")
	for _, s := range segments {
		fmt.Fprintf(w, "%6d %-16s %-16s %-14s %10.2f %5v\n",
			s.Sequence, s.Start.ID, s.End.ID, s.Tag(), s.Distance, s.SnakeDirection)
	}

	sum := segment.Summarize(segments)
	fmt.Fprintf(w, "\nSegments: %d  Total distance: %.2f\n", sum.Segments, sum.TotalDistance)
	fmt.Fprintf(w, "Jumps: %d (%.2f)\n", sum.Jumps, sum.JumpDistance)
	for _, t := range segment.SegmentTypes() {
		fmt.Fprintf(w, "  %-14s %d\n", t, sum.ByType[t])
	}
	fmt.Fprintf(w, "Completed: %d (%.0f%%)\n", sum.Completed, sum.Fraction*100)
}
