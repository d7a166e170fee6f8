// Package spatial provides the point containers the sampler uses to
// answer "is there already a point within r of q?" — bulk-built once
// per sampling pass, then grown one point at a time as new particles
// are accepted.
package spatial

import "github.com/go-gl/mathgl/mgl32"

// Index is the capability any point container must offer. Modelled as
// an interface rather than a base type so tests (and callers) can
// parameterise over it — a KD-tree and a brute-force scan both qualify.
type Index interface {
	// Append adds a batch of points; each is queryable immediately.
	Append(points []mgl32.Vec3)
	// AppendOne adds a single point; queryable immediately.
	AppendOne(p mgl32.Vec3)
	// AnyWithinRadius reports whether at least one stored point lies
	// within Euclidean distance r of q. Monotone in r.
	AnyWithinRadius(q mgl32.Vec3, r float32) bool
	// Items reads out all stored points; insertion order not required.
	Items() []mgl32.Vec3
	// Len reports the number of stored points.
	Len() int
	// Clear empties the index.
	Clear()
}

// rebuildThreshold is the size the pending (un-indexed) list is allowed
// to reach before a KD-tree rebuild is triggered. The spec suggests
// sqrt(N) of the built part or a fixed 64; a fixed threshold keeps the
// rebuild cost bounded and predictable, which matters more than
// asymptotic optimality at the particle counts this sampler handles
// (a few thousand).
const rebuildThreshold = 64
