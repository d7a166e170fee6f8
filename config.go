package surfel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the construction-time configuration for a sampler
// pipeline: the primary density control and the hard output budget
// (spec §4.4 "Budgeting"), plus an optional fixed PRNG seed for
// reproducible runs (spec §5 "Determinism"). The sampler itself
// persists nothing (spec §6); Config only exists to load scene/bench
// fixtures for the CLI and tests from YAML, the way the pack's
// jhkimqd-chaos-utils teaches config-from-YAML for its own tooling.
type Config struct {
	Radius     float32            `yaml:"radius"`
	Capacity   int                `yaml:"capacity"`
	Seed       int64              `yaml:"seed"`
	Ellipsoids []EllipsoidFixture `yaml:"ellipsoids"`
}

// EllipsoidFixture is one drawEllipsoid call's worth of YAML: the
// decomposed Transform (spec §6 Design Notes) plus the ellipsoid's
// half-extents, for bench/test fixtures that describe a scene
// declaratively instead of calling the host package directly.
type EllipsoidFixture struct {
	Position        [3]float32 `yaml:"position"`
	RotationDegrees [3]float32 `yaml:"rotationDegrees"`
	Scale           [3]float32 `yaml:"scale"`
	Size            [3]float32 `yaml:"size"`
}

// LoadConfig reads a YAML-encoded Config from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("surfel: read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("surfel: parse config %q: %w", path, err)
	}

	if cfg.Radius <= 0 {
		return Config{}, fmt.Errorf("surfel: config %q: radius must be positive", path)
	}
	if cfg.Capacity <= 0 {
		return Config{}, fmt.Errorf("surfel: config %q: capacity must be positive", path)
	}

	return cfg, nil
}
