package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tubesheet-planner/internal/app"
	"tubesheet-planner/internal/preview"
	"tubesheet-planner/internal/project"
	"tubesheet-planner/pkg/colorutil"
)

var (
	renderOut       string
	renderThrough   int
	renderScale     float64
	renderNoLabels  bool
	renderHideJumps bool
)

var renderCmd = &cobra.Command{
	Use:   "render [holes]",
	Short: "Draw the planned path to an image",
	Long:  "Render the holes and the planned path, colored by segment type and progress, to a PNG or TIFF file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "path.png", "output image (.png, .tif)")
	renderCmd.Flags().IntVar(&renderThrough, "through", 0, "mark progress through this sequence number")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 0, "pixels per sheet unit (default from project)")
	renderCmd.Flags().BoolVar(&renderNoLabels, "no-labels", false, "omit sequence labels")
	renderCmd.Flags().BoolVar(&renderHideJumps, "hide-jumps", false, "omit segments that leave the serpentine direction")
}

func runRender(cmd *cobra.Command, args []string) error {
	in, err := loadInput(args)
	if err != nil {
		return err
	}
	if renderThrough > 0 {
		if err := in.state.Advance(renderThrough); err != nil {
			return err
		}
	}

	opts, err := renderOptions(in.project.Display)
	if err != nil {
		return err
	}
	if err := renderTo(renderOut, in.state, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOut)
	return nil
}

// renderOptions applies project display settings and flags over the defaults.
func renderOptions(d project.DisplaySettings) (preview.Options, error) {
	opts := preview.DefaultOptions()
	if d.LineColor != "" {
		c, err := colorutil.ParseHex(d.LineColor)
		if err != nil {
			return opts, fmt.Errorf("line color: %w", err)
		}
		opts.LineColor = c
	}
	if d.LineWidth > 0 {
		opts.LineWidth = d.LineWidth
	}
	if d.Scale > 0 {
		opts.Scale = d.Scale
	}
	opts.ShowLabels = d.ShowLabels
	if renderScale > 0 {
		opts.Scale = renderScale
	}
	if renderNoLabels {
		opts.ShowLabels = false
	}
	opts.HideJumps = renderHideJumps
	return opts, nil
}

func renderTo(path string, state *app.State, opts preview.Options) error {
	snap := state.Snapshot()
	img := preview.Render(snap.Positions, snap.Segments, opts)
	if err := preview.Save(path, img); err != nil {
		return err
	}
	zap.S().Debugw("preview written",
		"path", path,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())
	return nil
}
