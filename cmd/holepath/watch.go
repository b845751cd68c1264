package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tubesheet-planner/internal/app"
	"tubesheet-planner/internal/holeio"
)

var (
	watchOut      string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [holes]",
	Short: "Replan whenever the hole file changes",
	Long:  "Watch the hole file, replan on every change and rewrite the preview image.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "path.png", "preview image rewritten on change")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "wait this long after the last change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	in, err := loadInput(args)
	if err != nil {
		return err
	}
	opts, err := renderOptions(in.project.Display)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	in.state.On(app.EventPathPlanned, func(data interface{}) {
		snap, ok := data.(app.Snapshot)
		if !ok {
			return
		}
		fmt.Fprintf(out, "%s: %d holes planned with %s, %d dropped\n",
			time.Now().Format("15:04:05"), len(snap.Plan.Order), snap.Strategy, len(snap.Diagnostics))
		if err := renderTo(watchOut, in.state, opts); err != nil {
			zap.S().Errorw("render failed", "path", watchOut, "error", err)
		}
	})
	if err := renderTo(watchOut, in.state, opts); err != nil {
		return err
	}

	w, err := app.NewWatcher(watchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	err = w.Watch([]string{in.holesPath}, func(path string) {
		records, err := holeio.Load(path)
		if err != nil {
			zap.S().Errorw("reload failed", "path", path, "error", err)
			return
		}
		if err := in.state.Load(records); err != nil {
			zap.S().Errorw("replan failed", "path", path, "error", err)
		}
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", in.holesPath)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
