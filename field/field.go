// Package field defines the signed scalar field contract the sampler
// operates against, plus the finite-difference numerics built on top of
// it: gradient estimation, the on-surface test, Newton projection, and
// seed search.
package field

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// gradientStep is the forward-difference step used by Gradient. Matches
// the Rust original's h = 0.0001 exactly.
const gradientStep = 1e-4

// float32Epsilon is the machine epsilon for float32 (matches Rust's
// f32::EPSILON), the unit the on-surface tolerances are scaled against.
const float32Epsilon = 1.1920929e-7

// SignedField is the only contract the sampler requires: a signed
// scalar at a point, negative inside the surface, positive outside,
// zero on it. Differentiability is assumed only to within what forward
// differences recover.
type SignedField interface {
	Sample(p mgl32.Vec3) float32
}

// FieldFunc adapts a plain function to SignedField.
type FieldFunc func(p mgl32.Vec3) float32

func (f FieldFunc) Sample(p mgl32.Vec3) float32 { return f(p) }

// Gradient returns the forward-difference approximation of the field's
// gradient at p, unnormalised. Cheaper than central differences and
// sufficient for Newton-style projection; callers that need a unit
// vector normalise explicitly.
func Gradient(f SignedField, p mgl32.Vec3) mgl32.Vec3 {
	sp := f.Sample(p)

	dx := (f.Sample(mgl32.Vec3{p.X() + gradientStep, p.Y(), p.Z()}) - sp) / gradientStep
	dy := (f.Sample(mgl32.Vec3{p.X(), p.Y() + gradientStep, p.Z()}) - sp) / gradientStep
	dz := (f.Sample(mgl32.Vec3{p.X(), p.Y(), p.Z() + gradientStep}) - sp) / gradientStep

	return mgl32.Vec3{dx, dy, dz}
}

// OnSurface reports whether p lies within the strict tolerance of the
// zero set. The tight tolerance, combined with bounded iteration counts
// upstream, guarantees progress or give-up rather than infinite spinning.
func OnSurface(f SignedField, p mgl32.Vec3) bool {
	return abs32(f.Sample(p)) <= 2*float32Epsilon
}

// OnSurfaceLoose is the relaxed tolerance (10*eps) used to judge
// surviving-but-not-fully-converged live particles (spec §8 property 2).
func OnSurfaceLoose(f SignedField, p mgl32.Vec3) bool {
	return abs32(f.Sample(p)) <= 10*float32Epsilon
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// ProjectToSurface runs Newton's method along the gradient direction,
// up to maxIters steps, stopping early once OnSurface holds. If the
// gradient's self dot-product is NaN the field has violated its
// contract (it must be Lipschitz near the zero set); this is a fatal
// abort, not a recoverable error.
func ProjectToSurface(f SignedField, guess mgl32.Vec3, maxIters int) mgl32.Vec3 {
	p := guess

	for i := 0; i < maxIters; i++ {
		grad := Gradient(f, p)
		gdg := grad.Dot(grad)

		if math.IsNaN(float64(gdg)) {
			panic("field.ProjectToSurface: gradient magnitude is NaN — field violates its Lipschitz contract")
		}

		p = p.Sub(grad.Mul(f.Sample(p) / gdg))

		if OnSurface(f, p) {
			break
		}
	}

	return p
}

// Seed returns any point satisfying OnSurface, starting from a uniform
// random guess in [0,1)^3 and projecting it to the surface with up to
// 100 Newton iterations. The caller supplies the PRNG (spec Design
// Notes: "replace global PRNG with an explicitly-threaded PRNG owned by
// the sampler" — the global-state version used by the original Rust
// implementation is a testability hazard).
func Seed(f SignedField, rng *rand.Rand) mgl32.Vec3 {
	guess := mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()}

	p := ProjectToSurface(f, guess, 100)

	if !OnSurface(f, p) {
		panic("field.Seed: could not find a seed point within 100 iterations")
	}

	return p
}
