package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gekko3d/surfel"
	"github.com/gekko3d/surfel/host"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Run the pipeline against a scene fixture and print the surfel count",
	RunE:  runRun,
}

// drawScene replays a loaded fixture's ellipsoids into a begun pipeline.
func drawScene(h host.Handle, cfg surfel.Config) {
	for _, e := range cfg.Ellipsoids {
		transform := host.Transform{
			Position:        vec3(e.Position),
			RotationDegrees: vec3(e.RotationDegrees),
			Scale:           vec3(e.Scale),
		}
		host.DrawEllipsoid(h, transform, host.Ellipsoid{X: e.Size[0], Y: e.Size[1], Z: e.Size[2]})
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--scene flag is required")
	}

	cfg, err := surfel.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("surfelbench: %w", err)
	}

	log := surfel.NewNopLogger()
	if verbose {
		log = surfel.NewDefaultLogger("surfelbench", true)
	}

	h := host.MakeWithLogger(cfg.Radius, cfg.Capacity, log)
	defer host.Free(h)

	var samples int
	for i := 0; i < frames; i++ {
		host.Begin(h)
		drawScene(h, cfg)
		host.End(h)
		samples = len(host.Encode(h))
	}

	fmt.Printf("surfelbench: %d frames, %d surfels in final frame (capacity %d)\n", frames, samples, cfg.Capacity)
	return nil
}
