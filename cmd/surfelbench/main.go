// Command surfelbench drives the sampler pipeline against a YAML scene
// fixture for manual verification and profiling, the way the pack's
// chaos-runner CLI drives its own scenario files through cobra
// subcommands.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	frames  int
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "surfelbench",
	Short: "Exercises the surfel sampler pipeline against a YAML scene fixture",
	Long: `surfelbench loads a scene fixture (radius, capacity, seed, and a list
of ellipsoids) and drives it through the host package's
Make/Begin/DrawEllipsoid/End/Encode contract for --frames frames, then
either prints the final surfel count (run) or reports nearest-neighbour
separation statistics (stats).`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "scene", "", "path to scene YAML fixture (required)")
	rootCmd.PersistentFlags().IntVar(&frames, "frames", 1, "number of resample frames to run")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
