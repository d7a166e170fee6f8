package spatial

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// kdNode is a node in the flat, slice-backed KD-tree. Leaves carry a
// single point (leaf == true); internal nodes split on axis at the
// median of their subtree and point at a left/right child index, same
// shape as the teacher's bvh.BVHNode linearised tree.
type kdNode struct {
	point mgl32.Vec3
	axis  int8
	leaf  bool
	left  int32
	right int32
}

// KDIndex is a KD-tree over 3-D points with lazy rebuild: points
// appended since the last build are kept in a small pending list and
// scanned linearly; once pending reaches rebuildThreshold the whole
// tree (built + pending) is rebuilt from scratch. AnyWithinRadius
// visits the tree with standard axis-aligned pruning, plus a linear
// scan of pending.
type KDIndex struct {
	built   []mgl32.Vec3 // points already folded into nodes, in build order
	nodes   []kdNode
	root    int32
	pending []mgl32.Vec3
}

// NewKDIndex returns an empty KD-tree index.
func NewKDIndex() *KDIndex {
	return &KDIndex{root: -1}
}

func (idx *KDIndex) Append(points []mgl32.Vec3) {
	idx.pending = append(idx.pending, points...)
	idx.maybeRebuild()
}

func (idx *KDIndex) AppendOne(p mgl32.Vec3) {
	idx.pending = append(idx.pending, p)
	idx.maybeRebuild()
}

func (idx *KDIndex) maybeRebuild() {
	if len(idx.pending) < rebuildThreshold {
		return
	}
	idx.rebuild()
}

// rebuild folds pending into built and reconstructs the tree. Exposed
// indirectly via maybeRebuild; also safe to call directly (e.g. before
// a long run of AnyWithinRadius queries) to amortise query cost.
func (idx *KDIndex) rebuild() {
	idx.built = append(idx.built, idx.pending...)
	idx.pending = idx.pending[:0]

	if len(idx.built) == 0 {
		idx.nodes = nil
		idx.root = -1
		return
	}

	pts := make([]mgl32.Vec3, len(idx.built))
	copy(pts, idx.built)

	idx.nodes = make([]kdNode, 0, len(pts))
	idx.root = idx.build(pts, 0)
}

func (idx *KDIndex) build(pts []mgl32.Vec3, depth int) int32 {
	nodeIdx := int32(len(idx.nodes))

	if len(pts) == 1 {
		idx.nodes = append(idx.nodes, kdNode{point: pts[0], leaf: true, left: -1, right: -1})
		return nodeIdx
	}

	axis := depth % 3
	// Stable sort: ties on this axis must preserve insertion order so
	// that a fixed point sequence always rebuilds into the same tree
	// shape (spec §8 property 4, determinism).
	sort.SliceStable(pts, func(i, j int) bool { return pts[i][axis] < pts[j][axis] })

	mid := len(pts) / 2
	median := pts[mid]

	idx.nodes = append(idx.nodes, kdNode{point: median, axis: int8(axis), left: -1, right: -1})

	left := pts[:mid]
	right := pts[mid+1:]

	if len(left) > 0 {
		idx.nodes[nodeIdx].left = idx.build(left, depth+1)
	}
	if len(right) > 0 {
		idx.nodes[nodeIdx].right = idx.build(right, depth+1)
	}

	return nodeIdx
}

func (idx *KDIndex) AnyWithinRadius(q mgl32.Vec3, r float32) bool {
	for _, p := range idx.pending {
		if dist(p, q) <= r {
			return true
		}
	}

	if idx.root < 0 {
		return false
	}

	return idx.anyWithinRadius(idx.root, q, r)
}

func (idx *KDIndex) anyWithinRadius(nodeIdx int32, q mgl32.Vec3, r float32) bool {
	if nodeIdx < 0 {
		return false
	}

	node := &idx.nodes[nodeIdx]

	if dist(node.point, q) <= r {
		return true
	}

	if node.leaf {
		return false
	}

	diff := q[node.axis] - node.point[node.axis]

	near, far := node.left, node.right
	if diff > 0 {
		near, far = node.right, node.left
	}

	if idx.anyWithinRadius(near, q, r) {
		return true
	}

	// Only descend into the far side if the splitting plane itself is
	// within r of q — otherwise no point over there can be closer than r.
	if abs32(diff) > r {
		return false
	}

	return idx.anyWithinRadius(far, q, r)
}

func (idx *KDIndex) Items() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, len(idx.built)+len(idx.pending))
	out = append(out, idx.built...)
	out = append(out, idx.pending...)
	return out
}

func (idx *KDIndex) Len() int {
	return len(idx.built) + len(idx.pending)
}

func (idx *KDIndex) Clear() {
	idx.built = idx.built[:0]
	idx.pending = idx.pending[:0]
	idx.nodes = nil
	idx.root = -1
}

func dist(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Len()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
