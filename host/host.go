// Package host is the embedding interface (spec §6): the host-facing
// boundary a foreign-function layer would export, modelled here as a
// handle registry rather than raw pointers. Grounded in the Rust
// original's counter.rs ffi submodule (make/next/free) and
// utils.rs's with_boxed/with_boxed_mut (operate on a boxed value
// behind an opaque handle without invalidating the caller's handle) —
// translated to the Go-idiomatic equivalent, since Go cannot safely
// hand out raw heap pointers the way Box::into_raw does: a
// mutex-guarded table from Handle (a uuid.UUID, spec's "opaque handle")
// to the pipeline it names.
package host

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	surfel "github.com/gekko3d/surfel"
	"github.com/gekko3d/surfel/field"
	"github.com/gekko3d/surfel/sampling"
	"github.com/gekko3d/surfel/scene"
	"github.com/gekko3d/surfel/store"
)

// Handle is the opaque reference a host holds to one pipeline
// instance. Never constructed by the host; only returned by Make.
type Handle uuid.UUID

func (h Handle) String() string { return uuid.UUID(h).String() }

// Ellipsoid is the three half-extents wire argument to DrawEllipsoid.
type Ellipsoid struct {
	X, Y, Z float32
}

func (e Ellipsoid) toScene() scene.Ellipsoid {
	return scene.Ellipsoid{Size: mgl32.Vec3{e.X, e.Y, e.Z}}
}

type pipelineState int

const (
	stateIdle pipelineState = iota
	stateCollecting
	stateReady
)

// pipeline is the registry's payload: a scene collector plus the live
// sampler that refreshes against it, and the state machine named in
// spec §4.4 (Idle -> Collecting -> Ready -> Idle).
type pipeline struct {
	mu sync.Mutex

	state pipelineState
	scene *scene.Scene
	sampr *sampling.LiveSampler
	log   surfel.Logger
}

var (
	registryMu sync.Mutex
	registry   = map[Handle]*pipeline{}
)

// Make allocates a pipeline bound to the given target radius and
// output capacity, and returns its opaque handle. The PRNG is seeded
// from crypto-independent process entropy by default; tests use
// MakeDeterministic when they need a fixed seed.
func Make(radius float32, capacity int) Handle {
	return make_(radius, capacity, rand.New(rand.NewSource(rand.Int63())), surfel.NewNopLogger())
}

// MakeWithLogger is Make, but with a caller-supplied Logger instead of
// the no-op default — the host embeds this package as a library, so
// logging goes through whatever the host's own Logger resource is.
func MakeWithLogger(radius float32, capacity int, log surfel.Logger) Handle {
	return make_(radius, capacity, rand.New(rand.NewSource(rand.Int63())), log)
}

// MakeDeterministic is Make with an explicit PRNG seed, for tests and
// for hosts that want reproducible sampling across runs (spec §5
// "Determinism").
func MakeDeterministic(radius float32, capacity int, seed int64) Handle {
	return make_(radius, capacity, rand.New(rand.NewSource(seed)), surfel.NewNopLogger())
}

func make_(radius float32, capacity int, rng *rand.Rand, log surfel.Logger) Handle {
	p := &pipeline{
		state: stateIdle,
		scene: scene.New(),
		sampr: sampling.NewLiveSampler(capacity, radius, rng),
		log:   log,
	}

	h := Handle(uuid.New())

	registryMu.Lock()
	registry[h] = p
	registryMu.Unlock()

	log.Debugf("host: allocated pipeline %s (radius=%f capacity=%d)", h, radius, capacity)

	return h
}

// Free releases all memory owned by handle. The handle must not be
// used again afterwards; doing so panics (use-after-free is host
// misuse, spec §7).
func Free(h Handle) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[h]; !ok {
		panic(fmt.Sprintf("host.Free: unknown or already-freed handle %s", h))
	}
	delete(registry, h)
}

func lookup(h Handle) *pipeline {
	registryMu.Lock()
	p, ok := registry[h]
	registryMu.Unlock()

	if !ok {
		panic(fmt.Sprintf("host: unknown or freed handle %s", h))
	}
	return p
}

// Begin clears the scene and resets the instance count. Must precede
// any DrawEllipsoid call.
func Begin(h Handle) {
	p := lookup(h)
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scene.Begin()
	p.state = stateCollecting
}

// DrawEllipsoid appends one primitive to the scene being collected.
// Panics if called outside a Begin/End bracket (spec §7 "begin not
// preceded" is the mirror image of this: here, draw without begin).
func DrawEllipsoid(h Handle, transform Transform, ellipsoid Ellipsoid) {
	p := lookup(h)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != stateCollecting {
		panic("host.DrawEllipsoid: called outside a Begin/End bracket")
	}

	p.scene.DrawEllipsoid(transform.WorldToLocal(), ellipsoid.toScene())
}

// End executes the resample; after this, surfels are readable via
// Encode. Fatal if the scene is empty (spec §7 "Configuration errors").
func End(h Handle) {
	p := lookup(h)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != stateCollecting {
		panic("host.End: called without a preceding Begin")
	}
	if p.scene.Len() == 0 {
		panic("host.End: scene is empty — begin was not followed by any drawEllipsoid")
	}

	p.sampr.Resample(p.scene)
	p.state = stateReady

	p.log.Debugf("host: resampled to %d surfels", p.sampr.Store().Len())
}

// Encode returns the current surfels for the host's GPU pipeline to
// consume (the actual GPU submission is out of scope — spec §1 lists
// rasterisation pipelines as an external collaborator; this is the
// Go-side half of the contract a real encoder would read from).
// Must be called after End; calling it before a resample panics.
// Encode returns the pipeline to Idle, so each End is encoded once.
func Encode(h Handle) []store.Sample {
	p := lookup(h)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != stateReady {
		panic("host.Encode: called before End produced a resample")
	}
	p.state = stateIdle

	return p.sampr.Store().Samples()
}

var _ field.SignedField = (*scene.Scene)(nil)
