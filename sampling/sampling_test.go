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

type unitSphere struct{}

func (unitSphere) Sample(p mgl32.Vec3) float32 { return p.Dot(p) - 1 }

type ellipsoidField struct{ sx, sy, sz float32 }

func (e ellipsoidField) Sample(p mgl32.Vec3) float32 {
	return (p.X()*p.X())/(e.sx*e.sx) + (p.Y()*p.Y())/(e.sy*e.sy) + (p.Z()*p.Z())/(e.sz*e.sz) - 1
}

func TestInitialSampleSeparationAndOnSurface(t *testing.T) {
	// spec §8 end-to-end scenario: unit sphere, r=0.1 -> 300-500 surfels.
	rng := rand.New(rand.NewSource(7))
	radius := float32(0.1)

	pts := sampling.InitialSample(unitSphere{}, radius, rng)

	assert.GreaterOrEqual(t, len(pts), 250)
	assert.LessOrEqual(t, len(pts), 600)

	for _, p := range pts {
		assert.True(t, field.OnSurfaceLoose(unitSphere{}, p))
	}

	minSeparation := radius * 1.9 * 0.99 // 1% slack for projection error
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d := pts[i].Sub(pts[j]).Len()
			require.GreaterOrEqual(t, d, minSeparation, "points %d,%d too close: %f", i, j, d)
		}
	}
}

func TestInitialSampleProlateEllipsoid(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	radius := float32(0.2)

	pts := sampling.InitialSample(ellipsoidField{2, 0.5, 0.5}, radius, rng)

	require.NotEmpty(t, pts)

	// concentration tangent to the long axis: some points should have
	// |x| noticeably larger than |y| or |z|.
	foundLong := false
	for _, p := range pts {
		if abs(p.X()) > 1.2*abs(p.Y())+0.1 {
			foundLong = true
			break
		}
	}
	assert.True(t, foundLong, "expected coverage concentrated along the long axis")
}

func TestSiblingsAreRoughlySeparation(t *testing.T) {
	radius := float32(0.05)
	parent := field.Seed(unitSphere{}, rand.New(rand.NewSource(1)))

	siblings := sampling.Siblings(unitSphere{}, parent, radius)
	for _, s := range siblings {
		assert.True(t, field.OnSurfaceLoose(unitSphere{}, s))
		assert.InDelta(t, 2*radius, s.Sub(parent).Len(), 0.1*radius)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
