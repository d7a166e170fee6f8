package spatial_test

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/surfel/spatial"
)

// parameterised over the Index interface, per the spec's design note
// that tests should not care which concrete container backs it.
func indexes() map[string]func() spatial.Index {
	return map[string]func() spatial.Index{
		"kdtree": func() spatial.Index { return spatial.NewKDIndex() },
		"linear": func() spatial.Index { return spatial.NewLinearIndex() },
	}
}

func TestAnyWithinRadius(t *testing.T) {
	for name, newIdx := range indexes() {
		t.Run(name, func(t *testing.T) {
			idx := newIdx()
			idx.Append([]mgl32.Vec3{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}})

			require.True(t, idx.AnyWithinRadius(mgl32.Vec3{0.5, 0, 0}, 1))
			require.False(t, idx.AnyWithinRadius(mgl32.Vec3{5, 5, 5}, 1))
			require.True(t, idx.AnyWithinRadius(mgl32.Vec3{9, 0, 0}, 2))
		})
	}
}

func TestAppendOneIsImmediatelyQueryable(t *testing.T) {
	for name, newIdx := range indexes() {
		t.Run(name, func(t *testing.T) {
			idx := newIdx()
			idx.AppendOne(mgl32.Vec3{3, 3, 3})
			require.True(t, idx.AnyWithinRadius(mgl32.Vec3{3, 3, 3}, 0.01))
		})
	}
}

func TestClearEmptiesIndex(t *testing.T) {
	for name, newIdx := range indexes() {
		t.Run(name, func(t *testing.T) {
			idx := newIdx()
			idx.Append([]mgl32.Vec3{{0, 0, 0}})
			idx.Clear()
			require.Equal(t, 0, idx.Len())
			require.False(t, idx.AnyWithinRadius(mgl32.Vec3{0, 0, 0}, 10))
		})
	}
}

func TestMonotoneInRadius(t *testing.T) {
	for name, newIdx := range indexes() {
		t.Run(name, func(t *testing.T) {
			idx := newIdx()
			idx.Append([]mgl32.Vec3{{5, 0, 0}})

			require.False(t, idx.AnyWithinRadius(mgl32.Vec3{0, 0, 0}, 1))
			require.True(t, idx.AnyWithinRadius(mgl32.Vec3{0, 0, 0}, 10))
		})
	}
}

// TestKDIndexMatchesLinear is a randomised cross-check that the
// lazy-rebuild KD-tree answers AnyWithinRadius identically to the
// brute-force container, across rebuild boundaries (threshold 64).
func TestKDIndexMatchesLinear(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	kd := spatial.NewKDIndex()
	lin := spatial.NewLinearIndex()

	for i := 0; i < 300; i++ {
		p := mgl32.Vec3{rng.Float32() * 20, rng.Float32() * 20, rng.Float32() * 20}
		kd.AppendOne(p)
		lin.AppendOne(p)

		q := mgl32.Vec3{rng.Float32() * 20, rng.Float32() * 20, rng.Float32() * 20}
		r := rng.Float32() * 5

		require.Equal(t, lin.AnyWithinRadius(q, r), kd.AnyWithinRadius(q, r), "mismatch at i=%d", i)
	}
}
