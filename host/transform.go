package host

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the decomposed position/rotation/scale representation
// of the embedding interface's transform argument (spec §6, Design
// Notes: "the source contains both a matrix-pair Transform and a
// decomposed Transform with identical type name... pick one, document
// it, provide a conversion from the other at the FFI surface"). This
// package picks the decomposed form; ToMatrixPair below is the
// conversion a host using the matrix-pair wire format would call.
type Transform struct {
	Position        mgl32.Vec3
	RotationDegrees mgl32.Vec3
	Scale           mgl32.Vec3
}

// IdentityTransform is the zero-rotation, unit-scale transform at the
// origin.
func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix composes the world-from-local matrix T*R*S, with R built from
// RotationDegrees interpreted as Euler angles in degrees (spec §6:
// "radians-converted, ·π/180"), matching the teacher's
// voxelrt/rt/core.Transform.ObjectToWorld composition order.
func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := mgl32.AnglesToQuat(
		mgl32.DegToRad(t.RotationDegrees.X()),
		mgl32.DegToRad(t.RotationDegrees.Y()),
		mgl32.DegToRad(t.RotationDegrees.Z()),
		mgl32.XYZ,
	).Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// WorldToLocal is the inverse of Matrix — the mapping scene.Scene
// expects DrawEllipsoid to be given (spec §4.5: "the transform passed
// in is already the world-to-local mapping").
func (t Transform) WorldToLocal() mgl32.Mat4 {
	return t.Matrix().Inv()
}

// MatrixPair is the alternate wire representation named in spec §6:
// a pre-composed forward matrix plus its inverse, column-major. A host
// that already maintains its own transform hierarchy (and therefore
// its own matrix math) uses this instead of the decomposed form.
type MatrixPair struct {
	Matrix        mgl32.Mat4
	MatrixInverse mgl32.Mat4
}

// ToMatrixPair converts the decomposed Transform to the matrix-pair
// wire format, for a host that standardised on that representation.
func (t Transform) ToMatrixPair() MatrixPair {
	m := t.Matrix()
	return MatrixPair{Matrix: m, MatrixInverse: m.Inv()}
}
