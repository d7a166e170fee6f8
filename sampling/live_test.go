package sampling_test

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/surfel/field"
	"github.com/gekko3d/surfel/sampling"
)

type sphereAt struct {
	center mgl32.Vec3
	radius float32
}

func (s sphereAt) Sample(p mgl32.Vec3) float32 {
	d := p.Sub(s.center)
	return d.Dot(d)/(s.radius*s.radius) - 1
}

func TestLiveSamplerFirstFrameEqualsInitialTruncated(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ls := sampling.NewLiveSampler(64, 0.1, rng)

	ls.Resample(sphereAt{radius: 1})

	assert.LessOrEqual(t, ls.Store().Len(), 64)
	assert.Greater(t, ls.Store().Len(), 0)

	for _, s := range ls.Store().Samples() {
		assert.True(t, field.OnSurfaceLoose(sphereAt{radius: 1}, s.Position))
	}

	// Same PRNG seed: the first frame is the initial sample cut at capacity.
	initial := sampling.InitialSample(sphereAt{radius: 1}, 0.1, rand.New(rand.NewSource(11)))
	require.GreaterOrEqual(t, len(initial), ls.Store().Len())
	for i, s := range ls.Store().Samples() {
		assert.Equal(t, initial[i], s.Position)
	}
}

func TestLiveSamplerNeverExceedsBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	ls := sampling.NewLiveSampler(50, 0.02, rng)

	ls.Resample(sphereAt{radius: 1})

	assert.LessOrEqual(t, ls.Store().Len(), 50)
	assert.Equal(t, 50, ls.Store().Len(), "capacity stress: small r, large shape should saturate budget")
}

func TestLiveSamplerShrinkingSphereNeverAborts(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	ls := sampling.NewLiveSampler(400, 0.08, rng)

	prevLen := -1
	for frame := 0; frame <= 20; frame++ {
		r := 1 - 0.03*float32(frame)
		if r < 0.1 {
			r = 0.1
		}

		assert.NotPanics(t, func() {
			ls.Resample(sphereAt{radius: r})
		})

		assert.LessOrEqual(t, ls.Store().Len(), 400)
		_ = prevLen
		prevLen = ls.Store().Len()
	}
}

func TestLiveSamplerDeterministic(t *testing.T) {
	// spec §8 property 4: fixed PRNG seed + fixed scene + fixed r =>
	// bit-identical output across runs.
	run := func() []mgl32.Vec3 {
		rng := rand.New(rand.NewSource(99))
		ls := sampling.NewLiveSampler(120, 0.1, rng)
		ls.Resample(sphereAt{radius: 1})

		out := make([]mgl32.Vec3, ls.Store().Len())
		for i, s := range ls.Store().Samples() {
			out[i] = s.Position
		}
		return out
	}

	a := run()
	b := run()

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}
