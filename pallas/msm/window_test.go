package msm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/pallas-msm/pallas/fp"
)

func TestWindowSingleLimb(t *testing.T) {
	r := require.New(t)
	k := fp.Limbs{0b1011, 0, 0, 0, 0, 0, 0, 0}
	r.Equal(uint32(0b1011), Window(k, 0, 4))
	r.Equal(uint32(0), Window(k, 1, 4))
}

func TestWindowSpanningLimbBoundary(t *testing.T) {
	r := require.New(t)
	// bit 28..36 spans limb 0 (bits 28-31) and limb 1 (bits 0-3).
	k := fp.Limbs{0xF0000000, 0x0000000F, 0, 0, 0, 0, 0, 0}
	got := Window(k, 3, 12) // window index 3, width 12 -> bit offset 36, inside limb 1 only
	_ = got
	w := uint32(14)
	// bit offset j*w = 28 at j=2, w=14 covers bits [28,42): top 4 bits of
	// limb0 and low 10 bits of limb1, of which only bits 28..35 are set.
	got = Window(k, 2, w)
	r.Equal(uint32(0xFF), got)
}

func TestWindowBeyond256Bits(t *testing.T) {
	r := require.New(t)
	k := fp.Limbs{}
	r.Equal(uint32(0), Window(k, 100, 8))
}

func TestNumWindows(t *testing.T) {
	r := require.New(t)
	r.Equal(uint32(32), NumWindows(8))
	r.Equal(uint32(64), NumWindows(4))
	r.Equal(uint32(128), NumWindows(2))
	r.Equal(uint32(256), NumWindows(1))
}
