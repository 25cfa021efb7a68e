// Package hostglue implements the host-side plumbing an MSM call needs
// around the compute passes proper: bigint<->limb marshalling, the raw
// wire encoding a compute device consumes directly, and batch-size
// arithmetic driven by a device's storage-buffer limit.
package hostglue

import (
	"encoding/binary"
	"math/big"

	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/errs"
	"github.com/consensys/pallas-msm/pallas/fp"
)

// LimbBytes is the on-wire size of one Limbs256 value.
const LimbBytes = 32

// EncodeLimbs writes l as 8 little-endian u32 words, 32 bytes, no padding
// — the exact byte layout a compute device buffer expects.
func EncodeLimbs(l fp.Limbs) []byte {
	buf := make([]byte, LimbBytes)
	for i, w := range l {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// DecodeLimbs is the inverse of EncodeLimbs.
func DecodeLimbs(buf []byte) (fp.Limbs, error) {
	if len(buf) < LimbBytes {
		return fp.Limbs{}, errs.NewInvalidArgument("limb buffer too short: %d < %d", len(buf), LimbBytes)
	}
	var l fp.Limbs
	for i := range l {
		l[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return l, nil
}

// EncodeLimbsBatch encodes N Limbs256 values as 32*N contiguous bytes.
func EncodeLimbsBatch(ls []fp.Limbs) []byte {
	buf := make([]byte, LimbBytes*len(ls))
	for i, l := range ls {
		copy(buf[i*LimbBytes:], EncodeLimbs(l))
	}
	return buf
}

// DecodeLimbsBatch is the inverse of EncodeLimbsBatch.
func DecodeLimbsBatch(buf []byte) ([]fp.Limbs, error) {
	if len(buf)%LimbBytes != 0 {
		return nil, errs.NewInvalidArgument("limb batch buffer length %d not a multiple of %d", len(buf), LimbBytes)
	}
	n := len(buf) / LimbBytes
	out := make([]fp.Limbs, n)
	for i := 0; i < n; i++ {
		l, err := DecodeLimbs(buf[i*LimbBytes : (i+1)*LimbBytes])
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// ScalarsFromBigInts converts a slice of big.Int scalars to little-endian
// limbs via [curve.LimbsFromBigInt], truncating to the low 256 bits per
// the Scalar contract (core accepts up to 2^256-1; caller is responsible
// for any scalar-field reduction it needs beyond that).
func ScalarsFromBigInts(ks []*big.Int) []fp.Limbs {
	out := make([]fp.Limbs, len(ks))
	for i, k := range ks {
		out[i] = curve.LimbsFromBigInt(k)
	}
	return out
}

// PointsFromBigInts pairs up (x,y) big.Int coordinates into AffinePoints.
func PointsFromBigInts(xs, ys []*big.Int) ([]curve.AffinePoint, error) {
	if len(xs) != len(ys) {
		return nil, errs.NewInvalidArgument("len(xs)=%d != len(ys)=%d", len(xs), len(ys))
	}
	out := make([]curve.AffinePoint, len(xs))
	for i := range xs {
		out[i] = curve.AffinePoint{
			X: fp.NewElem(curve.LimbsFromBigInt(xs[i])),
			Y: fp.NewElem(curve.LimbsFromBigInt(ys[i])),
		}
	}
	return out, nil
}

// MaxChunkN returns floor(maxStorageBufferBindingSize / LimbBytes), the
// largest number of (scalar,point) pairs a single batch's buffers can
// hold at the given device storage-buffer limit.
func MaxChunkN(maxStorageBufferBindingSize uint64) int {
	return int(maxStorageBufferBindingSize / LimbBytes)
}

// NumBatches returns ceil(N/maxChunkN), the number of batches an MSM call
// over N pairs needs at the given per-batch capacity.
func NumBatches(n, maxChunkN int) int {
	if maxChunkN <= 0 || n <= 0 {
		return 0
	}
	return (n + maxChunkN - 1) / maxChunkN
}
