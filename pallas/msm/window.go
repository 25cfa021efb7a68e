package msm

import "github.com/consensys/pallas-msm/pallas/fp"

// Window extracts window j of a scalar: bits [j*w, j*w+w) of k, as an
// unsigned integer. The window spans at most two adjacent 32-bit limbs;
// when the bit offset within a limb plus w exceeds 32, the low part comes
// from the current limb shifted right and the high part from the next
// limb shifted left, OR'd together and masked to w bits.
func Window(k fp.Limbs, j, w uint32) uint32 {
	bitOffset := j * w
	limbIdx := bitOffset / 32
	bitInLimb := bitOffset % 32
	if limbIdx >= 8 {
		return 0
	}

	mask := uint32(1)<<w - 1
	if w == 32 {
		mask = 0xFFFFFFFF
	}

	lo := k[limbIdx] >> bitInLimb
	if bitInLimb+w <= 32 || limbIdx+1 >= 8 {
		return lo & mask
	}
	hi := k[limbIdx+1] << (32 - bitInLimb)
	return (lo | hi) & mask
}

// NumWindows returns ceil(256/w), the number of Pippenger windows needed
// to cover a 256-bit scalar with width-w windows.
func NumWindows(w uint32) uint32 {
	return uint32(ceilDiv(256, int(w)))
}
