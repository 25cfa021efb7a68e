// Package device defines the compute boundary the Pippenger host
// orchestrator (package msm) drives: a WebGPU-shaped compute pipeline
// reduced to the handful of operations the orchestrator actually needs.
//
// Acquiring an adapter/device, uploading buffers, and building bind-group
// layouts are out of scope for this core (spec: "external collaborators
// whose interfaces are described only where the core consumes them") — a
// concrete Device only needs to run the five compute passes over
// caller-owned Go slices. Package soft provides a CPU-simulated Device
// that runs each of these operations on the CPU, including a binary tree
// reduction, so the orchestrator can be exercised and tested with no GPU
// present.
package device

import (
	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/fp"
)

// Device is the compute boundary the host orchestrator drives. Every
// method corresponds to one or more compute-pass dispatches; a real
// backend would encode each as a WGSL/SPIR-V compute pipeline dispatch
// and a real GPU device, but nothing here requires that — only that the
// pass semantics match.
type Device interface {
	// AffineToProjective is pass A: converts a batch's affine points to
	// projective, Montgomery-form coordinates.
	AffineToProjective(points []curve.AffinePoint) []curve.Projective

	// AccumulateWindowBuckets is passes Bi1+Bi2 fused for one Pippenger
	// window: for every point i with Window(scalars[i], windowIdx, w) ==
	// idx, adds points[i] into buckets[idx]. buckets is caller-owned and
	// must already hold identity (or a prior window's — no, prior
	// batch's — partial sum, per the accumulate-not-overwrite
	// resolution of spec's Bi2 open question) in every slot; this method
	// only ever adds, never overwrites, exactly the semantics multi-batch
	// correctness requires.
	AccumulateWindowBuckets(scalars []fp.Limbs, points []curve.Projective, windowIdx, w uint32, includeBucketZero bool, buckets []curve.Projective) error

	// WeightedBucketSum is pass C for one window: reduces B bucket
	// accumulators into a single projective point representing that
	// window's contribution, using the correct idx-weighted running-sum
	// (see DESIGN.md for why the spec's literal (B-idx) weight formula is
	// not used here).
	WeightedBucketSum(buckets []curve.Projective) curve.Projective

	// TreeReduce is passes D/E's shared primitive: binary halving
	// reduction of an arbitrary-length slice of projective points down to
	// one point, exactly the "halve stride, point_add, barrier" pattern
	// used inside every workgroup-level reduction in the pipeline.
	TreeReduce(points []curve.Projective) curve.Projective
}

// WorkgroupSize is exposed here too (mirroring msm.WorkgroupSize) so a
// Device implementation can size its own scratch buffers without
// importing package msm, avoiding an import cycle.
const WorkgroupSize = 64
