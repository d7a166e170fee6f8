// Package sampling implements the two sampling algorithms the spec
// names: the initial hex-ring flood fill that covers a fresh surface,
// and the live per-frame resampler bounded by an output budget.
// Grounded in the Rust original's initial_sampling.rs, adapted to the
// teacher's idiom (mgl32 vectors, spatial.Index instead of a bespoke
// kd_indexer, explicit PRNG instead of rand::random()).
package sampling

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/surfel/field"
	"github.com/gekko3d/surfel/spatial"
)

// separationFactor is the rejection radius as a multiple of the target
// radius: 1.9*r, not 2*r — the slight slack absorbs projection error
// and avoids starvation at concave regions (spec §4.3).
const separationFactor = 1.9

// siblingRadiusFactor is the candidate generation radius in the
// tangent plane: 2*r.
const siblingRadiusFactor = 2.0

// refineIters bounds the Newton+separation iteration in Refine.
const refineIters = 10

// InitialSample floods a previously-unseen surface with points
// separated by at least separationFactor*radius, starting from a seed
// point found via field.Seed. Returns the accepted points in the
// spatial index's insertion order.
func InitialSample(f field.SignedField, radius float32, rng *rand.Rand) []mgl32.Vec3 {
	idx := spatial.NewKDIndex()
	return initialSampleInto(f, radius, rng, idx, nil, 0)
}

// initialSampleInto runs the hex-ring flood fill, seeding the worklist
// either from a fresh field.Seed() call (seeds empty) or from the
// given starting points, which are not added to idx (callers pass
// points idx already holds). idx accumulates all
// accepted points; it need not be empty on entry. limit, if > 0, caps
// the total number of points the index is allowed to hold — growth
// stops (not panics) once reached, since the live sampler enforces its
// budget this way rather than via Store.PushBack's hard fatal.
func initialSampleInto(f field.SignedField, radius float32, rng *rand.Rand, idx spatial.Index, seeds []mgl32.Vec3, limit int) []mgl32.Vec3 {
	var worklist []mgl32.Vec3

	if len(seeds) == 0 {
		p0 := field.Seed(f, rng)
		idx.AppendOne(p0)
		worklist = append(worklist, p0)
	} else {
		worklist = append(worklist, seeds...)
	}

	for len(worklist) > 0 {
		if limit > 0 && idx.Len() >= limit {
			break
		}

		n := len(worklist)
		parent := worklist[n-1]
		worklist = worklist[:n-1]

		for _, candidate := range Siblings(f, parent, radius) {
			if limit > 0 && idx.Len() >= limit {
				break
			}

			if idx.AnyWithinRadius(candidate, separationFactor*radius) {
				continue
			}

			idx.AppendOne(candidate)
			worklist = append(worklist, candidate)
		}
	}

	return idx.Items()
}

// Siblings computes the six candidates around parent, refined to the
// surface, at distance ~2*radius in the tangent plane at parent.
func Siblings(f field.SignedField, parent mgl32.Vec3, radius float32) [6]mgl32.Vec3 {
	normal := field.Gradient(f, parent).Normalize()
	u, v := planeBasisVectors(normal)

	var siblings [6]mgl32.Vec3

	for i := 0; i < 6; i++ {
		theta := float64(i) * math.Pi / 3

		guess := parent.
			Add(u.Mul(float32(math.Cos(theta)) * siblingRadiusFactor * radius)).
			Add(v.Mul(float32(math.Sin(theta)) * siblingRadiusFactor * radius))

		siblings[i] = Refine(f, radius, parent, guess)
	}

	return siblings
}

// planeBasisVectors builds an orthonormal tangent frame (u, v) for a
// point with the given surface normal: pick the cardinal axis least
// aligned with normal (minimum absolute component, matching the
// original's Vector3::imin()), then cross products to get an
// orthonormal pair in the tangent plane.
func planeBasisVectors(normal mgl32.Vec3) (u, v mgl32.Vec3) {
	cardinal := mgl32.Vec3{}
	cardinal[minAbsComponentAxis(normal)] = 1

	u = normal.Cross(cardinal).Normalize()
	v = u.Cross(normal).Normalize()
	return u, v
}

func minAbsComponentAxis(v mgl32.Vec3) int {
	axis := 0
	min := abs32(v.X())
	if a := abs32(v.Y()); a < min {
		axis, min = 1, a
	}
	if a := abs32(v.Z()); a < min {
		axis = 2
	}
	return axis
}

// Refine is projectToSurface plus a parent-separation constraint: after
// each Newton step, if the point has drifted within 2*radius of
// parent, it is pushed away along the point-minus-parent direction by
// exactly the shortfall. The joint iteration preserves hex spacing
// while letting the point slide along curvature.
func Refine(f field.SignedField, radius float32, parent, guess mgl32.Vec3) mgl32.Vec3 {
	p := guess

	for i := 0; i < refineIters; i++ {
		grad := field.Gradient(f, p)
		gdg := grad.Dot(grad)

		if math.IsNaN(float64(gdg)) {
			panic("sampling.Refine: gradient magnitude is NaN — field violates its Lipschitz contract")
		}

		p = p.Sub(grad.Mul(f.Sample(p) / gdg))

		// Spec formula: translate along the unit (p-parent) direction by
		// exactly the shortfall (2r - |p-parent|), not by the raw
		// unnormalised offset the original Rust scaled.
		away := p.Sub(parent)
		if mag := away.Len(); mag < 2*radius {
			away = away.Mul((2*radius - mag) / magOrOne(mag))
			p = p.Add(away)
		}

		if field.OnSurface(f, p) {
			break
		}
	}

	return p
}

// magOrOne avoids a divide-by-zero when p lands exactly on parent
// (pathological but possible for a degenerate field).
func magOrOne(mag float32) float32 {
	if mag == 0 {
		return 1
	}
	return mag
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
