package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tubesheet-planner/internal/segment"
	"tubesheet-planner/internal/session"
)

var (
	advanceDB      string
	advanceRun     string
	advanceNew     bool
	advanceThrough int
	advanceList    bool
)

var advanceCmd = &cobra.Command{
	Use:   "advance [holes]",
	Short: "Record inspection progress for a run",
	Long: `Record that the inspection has reached a segment of the planned path.

Runs are stored in a sessions database. Start a run with --new, then report
progress with --run <id> --through <seq>. Without --run the latest run for the
hole file is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdvance,
}

func init() {
	rootCmd.AddCommand(advanceCmd)

	advanceCmd.Flags().StringVar(&advanceDB, "db", "", "sessions database (default from project)")
	advanceCmd.Flags().StringVar(&advanceRun, "run", "", "run id")
	advanceCmd.Flags().BoolVar(&advanceNew, "new", false, "start a new run")
	advanceCmd.Flags().IntVar(&advanceThrough, "through", 0, "sequence number of the segment being inspected")
	advanceCmd.Flags().BoolVar(&advanceList, "list", false, "list stored runs")
}

func runAdvance(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if advanceList {
		dbPath := advanceDB
		if dbPath == "" && projectPath != "" {
			in, err := loadInput(args)
			if err != nil {
				return err
			}
			dbPath = in.sessionsPath("")
		}
		if dbPath == "" {
			return errors.New("no sessions database given (pass --db or --project)")
		}
		store, err := session.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		return listRuns(cmd, store)
	}

	in, err := loadInput(args)
	if err != nil {
		return err
	}
	dbPath := in.sessionsPath(advanceDB)
	if dbPath == "" {
		return errors.New("no sessions database given (pass --db or --project)")
	}

	store, err := session.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID := advanceRun
	switch {
	case advanceNew:
		snap := in.state.Snapshot()
		run, err := store.NewRun(in.holesPath, snap.Strategy, len(snap.Segments))
		if err != nil {
			return err
		}
		runID = run.ID
		fmt.Fprintf(out, "Started run %s (%d segments)\n", run.ID, run.Segments)
	case runID == "":
		run, err := store.Latest(in.holesPath)
		if err != nil {
			return err
		}
		runID = run.ID
	}

	if err := in.state.AttachSession(store, runID); err != nil {
		return err
	}
	if advanceThrough > 0 {
		if err := in.state.Advance(advanceThrough); err != nil {
			if errors.Is(err, segment.ErrProgressRegression) {
				return fmt.Errorf("run %s: %w", runID, err)
			}
			return err
		}
	}

	snap := in.state.Snapshot()
	sum := segment.Summarize(snap.Segments)
	fmt.Fprintf(out, "Run %s: through %d, %d/%d segments completed (%.0f%%)\n",
		runID, snap.Through, sum.Completed, sum.Segments, sum.Fraction*100)
	for _, s := range snap.Segments {
		if s.State == segment.Current {
			fmt.Fprintf(out, "Current: %s\n", s)
			break
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, store *session.Store) error {
	runs, err := store.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-36s %-20s %-19s %8s %8s\n", "Run", "Strategy", "Updated", "Through", "Segments")
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s %-20s %-19s %8d %8d\n",
			r.ID, r.Strategy, r.Updated().Format("2006-01-02 15:04:05"), r.Through, r.Segments)
	}
	return nil
}
