package sampling

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/surfel/field"
	"github.com/gekko3d/surfel/spatial"
	"github.com/gekko3d/surfel/store"
)

// growNeighbourRadius is the neighbour-count radius used to decide
// whether a particle needs more siblings (spec §4.4 step 3: "fewer
// than six neighbours within 2.1r").
const growNeighbourRadius = 2.1

// relaxNeighbourRadius and separationFactor are the radii used in the
// Relax step (spec §4.4 step 2): look within 2r, evict if closer than 1.9r.
const relaxNeighbourRadius = 2.0

// LiveSampler holds the population that persists across frames and
// refreshes it against a (possibly changed) field each frame, bounded
// by a hard capacity. Single-threaded, cooperative: each call runs to
// completion on the caller's goroutine, matching the host's
// synchronous per-frame resample (spec §5).
type LiveSampler struct {
	capacity int
	radius   float32
	rng      *rand.Rand

	store *store.Store
	index spatial.Index
}

// NewLiveSampler returns a sampler bounded at capacity surfels, with
// an explicitly-owned PRNG (spec Design Notes: no global PRNG state).
func NewLiveSampler(capacity int, radius float32, rng *rand.Rand) *LiveSampler {
	return &LiveSampler{
		capacity: capacity,
		radius:   radius,
		rng:      rng,
		store:    store.New(capacity),
		index:    spatial.NewKDIndex(),
	}
}

// SetRadius updates the target repulsion radius used by subsequent
// Resample calls. r is the primary density control (spec §4.4).
func (ls *LiveSampler) SetRadius(r float32) { ls.radius = r }

// Store exposes the backing sample store (read-only use expected; the
// sampler owns it).
func (ls *LiveSampler) Store() *store.Store { return ls.store }

// Resample runs the full per-frame algorithm: refit, relax, grow,
// reseed-if-empty, then refresh normals and commit (spec §4.4).
func (ls *LiveSampler) Resample(f field.SignedField) {
	particles := ls.refit(f)
	particles = ls.relax(particles)
	particles = ls.grow(f, particles)

	if len(particles) == 0 {
		particles = ls.reseed(f)
	}

	ls.commit(f, particles)
}

// refit re-projects each existing particle onto the new field; a
// particle that is still off-surface afterwards (bounded Newton, same
// tolerance as field.OnSurfaceLoose) is dropped — non-convergence is
// not an error (spec §7), it's just not carried forward.
func (ls *LiveSampler) refit(f field.SignedField) []mgl32.Vec3 {
	prev := ls.store.Samples()
	out := make([]mgl32.Vec3, 0, len(prev))

	for _, s := range prev {
		p := field.ProjectToSurface(f, s.Position, refineIters)
		if field.OnSurfaceLoose(f, p) {
			out = append(out, p)
		}
	}

	return out
}

// relax evicts over-dense particles: for each particle, if a neighbour
// within 2r is closer than 1.9r, the higher-index particle is removed
// (stable tie-break by insertion order). This resolves over-density
// caused by shape shrinkage.
func (ls *LiveSampler) relax(particles []mgl32.Vec3) []mgl32.Vec3 {
	removed := make([]bool, len(particles))

	for i := range particles {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(particles); j++ {
			if removed[j] {
				continue
			}
			d := particles[i].Sub(particles[j]).Len()
			if d <= relaxNeighbourRadius*ls.radius && d < separationFactor*ls.radius {
				removed[j] = true
			}
		}
	}

	out := particles[:0:0]
	for i, p := range particles {
		if !removed[i] {
			out = append(out, p)
		}
	}
	return out
}

// grow runs hex-ring expansion from under-dense particles (fewer than
// six neighbours) until every particle has been visited or the
// population hits the hard capacity. A particle whose six siblings are
// all rejected is passed over and may stay under-dense.
func (ls *LiveSampler) grow(f field.SignedField, particles []mgl32.Vec3) []mgl32.Vec3 {
	idx := spatial.NewKDIndex()
	idx.Append(particles)

	i := 0
	for i < len(particles) && idx.Len() < ls.capacity {
		parent := particles[i]

		if countNeighbours(idx, parent, growNeighbourRadius*ls.radius) >= 6 {
			i++
			continue
		}

		grew := false
		for _, candidate := range Siblings(f, parent, ls.radius) {
			if idx.Len() >= ls.capacity {
				break
			}
			if idx.AnyWithinRadius(candidate, separationFactor*ls.radius) {
				continue
			}
			idx.AppendOne(candidate)
			particles = append(particles, candidate)
			grew = true
		}

		if !grew {
			i++
		}
	}

	if idx.Len() > ls.capacity {
		particles = particles[:ls.capacity]
	}

	return particles
}

func countNeighbours(idx spatial.Index, q mgl32.Vec3, r float32) int {
	count := 0
	for _, p := range idx.Items() {
		if p == q {
			continue
		}
		if p.Sub(q).Len() <= r {
			count++
		}
	}
	return count
}

// reseed runs the initial-sampling algorithm capped at capacity, used
// when the population empties out entirely (e.g. the scene changed
// topology and every old particle fell off the surface).
func (ls *LiveSampler) reseed(f field.SignedField) []mgl32.Vec3 {
	idx := spatial.NewKDIndex()
	return initialSampleInto(f, ls.radius, ls.rng, idx, nil, ls.capacity)
}

// commit recomputes normals/radius for the surviving particles and
// writes them into the store, replacing its previous contents.
func (ls *LiveSampler) commit(f field.SignedField, particles []mgl32.Vec3) {
	if len(particles) > ls.capacity {
		particles = particles[:ls.capacity]
	}

	ls.store.Clear()
	ls.index.Clear()
	ls.index.Append(particles)

	for _, p := range particles {
		normal := field.Gradient(f, p).Normalize()
		ls.store.PushBack(store.Sample{Position: p, Normal: normal, Radius: ls.radius})
	}
}

