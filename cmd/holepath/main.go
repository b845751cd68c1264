// Command holepath plans and tracks tube sheet inspection paths.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tubesheet-planner/internal/version"
)

var (
	projectPath  string
	strategyName string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "holepath",
	Short: "Plan and track tube sheet inspection paths",
	Long: `holepath orders the holes of a tube sheet into a deterministic inspection path,
splits the path into typed segments and tracks inspection progress along it.

Hole lists are read from JSON or CSV files with id, x, y and optional row,
column and side fields.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "project file (.tsproj)")
	rootCmd.PersistentFlags().StringVarP(&strategyName, "strategy", "s", "", "path strategy: Hybrid, LabelBased, SpatialSnake, IntervalFourSShape")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func setupLogging(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func main() {
	err := rootCmd.Execute()
	_ = zap.L().Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
