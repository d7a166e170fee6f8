// Package store holds the fixed-capacity sample population the
// sampler reads from and writes to each frame.
package store

import "github.com/go-gl/mathgl/mgl32"

// Sample is a single surfel: a point on the surface, its unit-length
// surface normal, and the global repulsion radius. Invariants (live):
// |field.Sample(Position)| is within the on-surface tolerance
// (field.OnSurface / field.OnSurfaceLoose); Normal is the unit
// gradient direction at Position; Radius equals the frame's target
// radius.
type Sample struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Radius   float32
}

// Store is a bounded sequence of Samples with a capacity fixed at
// construction. Construction zeroes the backing memory so inactive
// entries are never read uninitialised; pushing past capacity is a
// hard fatal — the sampler must enforce its budget upstream, not rely
// on the store to grow.
type Store struct {
	capacity int
	samples  []Sample
}

// New returns an empty Store with room for capacity samples.
func New(capacity int) *Store {
	return &Store{
		capacity: capacity,
		samples:  make([]Sample, 0, capacity),
	}
}

// Capacity returns the store's fixed capacity.
func (s *Store) Capacity() int { return s.capacity }

// Clear empties the store without releasing its backing array.
func (s *Store) Clear() { s.samples = s.samples[:0] }

// PushBack appends a sample. Panics if the store is already at
// capacity — overflow is impossible by construction if callers respect
// the budget (spec §7 "Capacity exceeded").
func (s *Store) PushBack(sample Sample) {
	if len(s.samples) >= s.capacity {
		panic("store.Store.PushBack: capacity exceeded")
	}
	s.samples = append(s.samples, sample)
}

// Mutate overwrites the sample at index i.
func (s *Store) Mutate(i int, sample Sample) {
	s.samples[i] = sample
}

// Len reports the number of live samples currently stored.
func (s *Store) Len() int { return len(s.samples) }

// Samples returns a read-only view of the live samples, in insertion
// order. The caller must not retain it past the next mutating call.
func (s *Store) Samples() []Sample { return s.samples }

// Each iterates the live (position, normal, radius) triples in
// insertion order, stopping early if fn returns false.
func (s *Store) Each(fn func(i int, sample Sample) bool) {
	for i, sample := range s.samples {
		if !fn(i, sample) {
			return
		}
	}
}
