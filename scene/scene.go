// Package scene implements the reference SignedField used as the test
// surface: a per-frame collection of transformed ellipsoids, unioned
// under a smooth-minimum blend. Grounded in the teacher's
// voxelrt/rt/core.Scene (object list, per-frame AABB/lifecycle
// discipline) and the Rust original's RenderSurface in
// CreatureCreatorPipelines/src/surfaces.rs.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ellipsoid is three half-extents along the shape's local axes.
type Ellipsoid struct {
	Size mgl32.Vec3
}

type shape struct {
	worldToLocal mgl32.Mat4
	ellipsoid    Ellipsoid
}

// Scene is an ordered list of (transform, ellipsoid) pairs, reset each
// frame by Begin and populated by DrawEllipsoid. It is frozen for the
// duration of one sampling pass: the sampler borrows it as a
// field.SignedField and never retains a reference past End.
type Scene struct {
	shapes []shape
}

// New returns an empty Scene.
func New() *Scene {
	return &Scene{}
}

// Begin clears the scene, starting a new frame's collection phase.
func (s *Scene) Begin() {
	s.shapes = s.shapes[:0]
}

// DrawEllipsoid appends one primitive. worldToLocal is the
// world-to-object transform already inverted by the caller (spec
// §4.5: "the transform passed in is already the world-to-local mapping
// used to evaluate the primitive").
func (s *Scene) DrawEllipsoid(worldToLocal mgl32.Mat4, e Ellipsoid) {
	s.shapes = append(s.shapes, shape{worldToLocal: worldToLocal, ellipsoid: e})
}

// Len reports how many primitives the scene currently holds.
func (s *Scene) Len() int { return len(s.shapes) }

// Sample implements field.SignedField. Panics if the scene is empty —
// an empty scene at sampling time is host misuse (spec §7).
func (s *Scene) Sample(p mgl32.Vec3) float32 {
	switch len(s.shapes) {
	case 0:
		panic("scene.Scene.Sample: no shapes — nothing to sample")
	case 1:
		return s.evalShape(0, p)
	case 2:
		return Smin(s.evalShape(0, p), s.evalShape(1, p), smoothingFactor)
	default:
		// Single linear pass keeping the two smallest values, min1 <= min2.
		min1 := float32(math.Inf(1))
		min2 := float32(math.Inf(1))

		for i := range s.shapes {
			v := s.evalShape(i, p)
			if v < min1 {
				min1, min2 = v, min1
			} else if v < min2 {
				min2 = v
			}
		}

		return Smin(min1, min2, smoothingFactor)
	}
}

func (s *Scene) evalShape(i int, p mgl32.Vec3) float32 {
	sh := s.shapes[i]
	local := sh.worldToLocal.Mul4x1(p.Vec4(1)).Vec3()
	return evalEllipsoid(sh.ellipsoid.Size, local)
}

// evalEllipsoid is the per-shape quadratic form: cheap, and has
// well-defined gradients almost everywhere.
func evalEllipsoid(size mgl32.Vec3, p mgl32.Vec3) float32 {
	return (p.X()*p.X())/(size.X()*size.X()) +
		(p.Y()*p.Y())/(size.Y()*size.Y()) +
		(p.Z()*p.Z())/(size.Z()*size.Z()) -
		1
}

// smoothingFactor is k in Smin, fixed per spec §4.5.
const smoothingFactor = 0.5

// Smin is the polynomial smooth-minimum: a C1 surrogate for min(a,b)
// that rounds off the intersection crease between two implicit
// primitives. This spec blends only the two closest primitives — an
// acknowledged simplification (field is C0 but not C1 where three
// surfaces are mutually near) — implementers must preserve this exact
// behaviour; callers needing better continuity supply their own field.
func Smin(a, b, k float32) float32 {
	h := max32(k-abs32(a-b), 0)
	return min32(a, b) - h*h*0.25/k
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
