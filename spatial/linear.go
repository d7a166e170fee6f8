package spatial

import "github.com/go-gl/mathgl/mgl32"

// LinearIndex is the brute-force fallback: fine for small N (a few
// hundred points), the natural baseline to test KDIndex against, and
// simpler to reach for when a caller doesn't care about the
// above-2,000-point cliff the spec calls out for linear scans.
type LinearIndex struct {
	points []mgl32.Vec3
}

// NewLinearIndex returns an empty brute-force point container.
func NewLinearIndex() *LinearIndex {
	return &LinearIndex{}
}

func (idx *LinearIndex) Append(points []mgl32.Vec3) {
	idx.points = append(idx.points, points...)
}

func (idx *LinearIndex) AppendOne(p mgl32.Vec3) {
	idx.points = append(idx.points, p)
}

func (idx *LinearIndex) AnyWithinRadius(q mgl32.Vec3, r float32) bool {
	for _, p := range idx.points {
		if dist(p, q) <= r {
			return true
		}
	}
	return false
}

func (idx *LinearIndex) Items() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(idx.points))
	copy(out, idx.points)
	return out
}

func (idx *LinearIndex) Len() int { return len(idx.points) }

func (idx *LinearIndex) Clear() { idx.points = idx.points[:0] }
