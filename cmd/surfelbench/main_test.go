package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAndStatsAgainstFixture(t *testing.T) {
	cfgFile = "testdata/unit_sphere.yaml"
	frames = 1
	verbose = false
	defer func() { cfgFile = "" }()

	assert.NoError(t, runRun(runCmd, nil))
	assert.NoError(t, runStats(statsCmd, nil))
}

func TestRunRequiresSceneFlag(t *testing.T) {
	cfgFile = ""
	assert.Error(t, runRun(runCmd, nil))
	assert.Error(t, runStats(statsCmd, nil))
}
