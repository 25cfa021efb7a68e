// Package msm implements the Pippenger multi-scalar-multiplication
// pipeline: scalar windowing, batching against a device's storage-buffer
// limit, and the five-pass-plus-terminal compute schedule (A, Bi1, Bi2, C,
// D, E) described by the pipeline this module targets.
//
// The package itself never touches a GPU. It is the host orchestrator: it
// decides pass ordering, bucket counts, and batch sizes, and drives them
// through the [Device] interface in package device. A CPU-simulated
// implementation of that interface (package device/soft) lets the whole
// pipeline run and be tested without any compute hardware, running each
// device operation on the CPU.
package msm

import "github.com/consensys/pallas-msm/pallas/errs"

// WorkgroupSize is fixed at 64 across every compute pass. Nothing in this
// package derives dispatch counts from it (the soft device has no
// workgroups); a real shader-side workgroup size must match it.
const WorkgroupSize = 64

// LimbBytes is the wire size of one Limbs256 value: 8 little-endian u32
// words, 32 bytes, no padding.
const LimbBytes = 32

// Config configures one MSM call.
type Config struct {
	// WindowBits is the Pippenger window width w, in [1,22]. B = 2^w
	// buckets are allocated per batch. Zero means "not yet defaulted";
	// DefaultConfig() sets it, and Run replaces zero with the default.
	WindowBits uint32

	// Verbose logs the host orchestrator's once-per-call summary event
	// (n, window_bits, nb_batches, elapsed) at Info instead of Debug level;
	// the per-window dispatch events stay at Debug level.
	Verbose bool

	// MaxStorageBufferBindingSize bounds how many (scalar,point) pairs a
	// single batch may hold, in bytes. It stands in for a real compute
	// device's maxStorageBufferBindingSize limit; the soft device reports
	// a generous default, but a real backend should set this from the
	// device's reported limit before calling Run.
	MaxStorageBufferBindingSize uint64

	// IncludeBucketZero, when true, dispatches Bi1/Bi2 for bucket index 0
	// as well as [1,B). Bucket 0 only ever accumulates contributions from
	// scalars whose window value is zero, which contribute the identity
	// under the Pass C weighting (Device.WeightedBucketSum weights bucket
	// idx by idx and never reads bucket 0), so
	// this defaults to false for the measurable speedup the spec
	// documents.
	IncludeBucketZero bool
}

const defaultWindowBits = 8
const defaultMaxStorageBufferBindingSize = 128 << 20 // 128 MiB, a conservative desktop GPU default

// DefaultConfig returns the default configuration: an 8-bit window and a
// 128MiB per-batch storage buffer ceiling.
func DefaultConfig() Config {
	return Config{
		WindowBits:                  defaultWindowBits,
		MaxStorageBufferBindingSize: defaultMaxStorageBufferBindingSize,
	}
}

// normalize fills in zero-valued fields with defaults and validates the
// window width. It never mutates buckets or batching decisions that
// depend on N; those are computed in Run.
func (c Config) normalize() (Config, error) {
	if c.WindowBits == 0 {
		c.WindowBits = defaultWindowBits
	}
	if c.WindowBits > 22 {
		return c, errs.NewInvalidArgument("window_bits %d out of range [1,22]", c.WindowBits)
	}
	if c.MaxStorageBufferBindingSize == 0 {
		c.MaxStorageBufferBindingSize = defaultMaxStorageBufferBindingSize
	}
	return c, nil
}

// numBuckets returns B = 2^w.
func (c Config) numBuckets() uint32 { return 1 << c.WindowBits }

// maxChunkN returns floor(maxStorageBufferBindingSize / LimbBytes), the
// largest number of (scalar,point) pairs one batch's buffers can hold.
func (c Config) maxChunkN() int {
	return int(c.MaxStorageBufferBindingSize / LimbBytes)
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
