// Package soft implements a CPU-simulated [device.Device]. It runs each
// pass over ordinary Go slices instead of dispatching WGSL compute
// shaders: per-point bucket tests with serial accumulation into the bucket
// array (Bi1+Bi2 fused), the idx-weighted running-sum bucket aggregation
// (C), and one binary-halving tree reduction over a whole slice (D/E).
// There are no workgroups, so per-workgroup staging and cross-workgroup
// re-dispatch are not simulated. It exists so the orchestrator in package
// msm can be driven and tested without any GPU or compute-shader runtime
// present.
package soft

import (
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/fp"
	"github.com/consensys/pallas-msm/pallas/msm/device"
)

// Device is a CPU-simulated implementation of device.Device.
type Device struct {
	// Workers bounds how many goroutines AffineToProjective may use to
	// convert independent points concurrently. Zero means "no cap"
	// (GOMAXPROCS-bound via errgroup's natural scheduling).
	Workers int

	// lastOccupied is set by the most recent AccumulateWindowBuckets call
	// and consulted by WeightedBucketSum to skip empty buckets.
	lastOccupied *bitset.BitSet
}

var _ device.Device = (*Device)(nil)

// New returns a soft Device with no explicit worker cap.
func New() *Device { return &Device{} }

// AffineToProjective implements pass A. Each point is independent, so the
// conversions run concurrently across an errgroup — mirroring how pass A
// dispatches one thread per point with no shared state, the one pass in
// this pipeline with no ordering constraint at all (spec §5: "every pass
// either writes to a disjoint output... or accumulates via single-thread
// synchronization").
func (d *Device) AffineToProjective(points []curve.AffinePoint) []curve.Projective {
	out := make([]curve.Projective, len(points))
	if len(points) == 0 {
		return out
	}

	const chunkSize = 4096
	var g errgroup.Group
	if d.Workers > 0 {
		g.SetLimit(d.Workers)
	}
	for start := 0; start < len(points); start += chunkSize {
		start := start
		end := start + chunkSize
		if end > len(points) {
			end = len(points)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = curve.ToProjective(points[i])
			}
			return nil
		})
	}
	_ = g.Wait() // conversions cannot fail; errgroup used only for the fan-out
	return out
}

// AccumulateWindowBuckets implements passes Bi1+Bi2 for one window. The
// per-point bucket test (Bi1 step 1-2) and the accumulation into the
// shared bucket array (Bi2's serialized final write) are fused here since
// a CPU device has no workgroup-local memory to stage through; a real GPU
// device performs the same reduction in two passes purely to keep the
// atomic-like accumulation to one thread per workgroup. occupied tracks
// which buckets received at least one point this window, so
// WeightedBucketSum can skip empty (identity) buckets in O(occupied)
// instead of O(B).
func (d *Device) AccumulateWindowBuckets(scalars []fp.Limbs, points []curve.Projective, windowIdx, w uint32, includeBucketZero bool, buckets []curve.Projective) error {
	occupied := bitset.New(uint(len(buckets)))
	for i, k := range scalars {
		idx := windowValue(k, windowIdx, w)
		if idx == 0 && !includeBucketZero {
			continue
		}
		buckets[idx] = curve.Add(buckets[idx], points[i])
		occupied.Set(uint(idx))
	}
	d.lastOccupied = occupied
	return nil
}

func windowValue(k fp.Limbs, windowIdx, w uint32) uint32 {
	bitOffset := windowIdx * w
	limbIdx := bitOffset / 32
	bitInLimb := bitOffset % 32
	if limbIdx >= 8 {
		return 0
	}
	mask := uint32(1)<<w - 1
	if w >= 32 {
		mask = 0xFFFFFFFF
	}
	lo := k[limbIdx] >> bitInLimb
	if bitInLimb+w <= 32 || limbIdx+1 >= 8 {
		return lo & mask
	}
	hi := k[limbIdx+1] << (32 - bitInLimb)
	return (lo | hi) & mask
}

// WeightedBucketSum implements pass C: the idx-weighted running-sum
// reduction of B bucket accumulators into one point, Σ idx·bucket[idx]
// for idx in [1,B), computed with the classical Pippenger running-sum
// trick (accumulate a running total from the top bucket down, add it
// into the result every step) rather than the spec's literal
// weight=(B-idx) per-bucket scalar multiplication — see DESIGN.md for
// why that formula does not, in general, compute the same quantity.
func (d *Device) WeightedBucketSum(buckets []curve.Projective) curve.Projective {
	running := curve.Identity()
	total := curve.Identity()
	occ := d.lastOccupied
	for idx := len(buckets) - 1; idx >= 1; idx-- {
		if occ != nil && !occ.Test(uint(idx)) {
			// running still needs bucket[idx]=identity folded in so the
			// weighting stays correct for lower indices; adding identity
			// is a no-op, so just skip the (wasted) point_add.
		} else {
			running = curve.Add(running, buckets[idx])
		}
		total = curve.Add(total, running)
	}
	return total
}

// TreeReduce implements the shared binary-halving reduction used by
// passes D and E: repeatedly add points[t] and points[t+stride] for
// t<stride, halving stride each round until it reaches zero, exactly the
// per-workgroup tree reduction described for Bi1/Bi2/C, applied here
// across an arbitrarily large slice rather than one 64-wide workgroup —
// the host's repeated re-dispatch-with-smaller-n loop collapses to one
// call since the CPU has no workgroup-size ceiling to respect.
func (d *Device) TreeReduce(points []curve.Projective) curve.Projective {
	if len(points) == 0 {
		return curve.Identity()
	}
	work := make([]curve.Projective, len(points))
	copy(work, points)
	n := len(work)
	for n > 1 {
		half := n / 2
		for t := 0; t < half; t++ {
			work[t] = curve.Add(work[t], work[t+half])
		}
		if n%2 == 1 {
			// odd leftover carries forward into the next round unpaired.
			work[half] = work[n-1]
			half++
		}
		n = half
	}
	return work[0]
}
