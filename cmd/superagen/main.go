// Command superagen turns JSON event-truth files into a voxelized
// particle catalog, run by run.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "superagen: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "superagen",
		Short: "Voxelize LArTPC truth into a merged particle catalog",
		Long:  "superagen reads JSON truth events, bins them onto a voxel grid, runs the particle-label merge pipeline, and writes the result to a catalog sink.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(context.Background(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML run config (defaults are used if omitted)")
	cmd.Flags().StringVar(&opts.inputDir, "input", "", "directory of *.json truth event files")
	cmd.Flags().StringVar(&opts.outPath, "out", "catalog.csv", "catalog output path")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "catalog format: csv, sqlite, or json")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "number of events processed concurrently")
	cmd.Flags().BoolVar(&opts.watch, "watch-config", false, "hot-reload --config on change (applies starting with the next event)")
	cmd.MarkFlagRequired("input")

	return cmd
}
