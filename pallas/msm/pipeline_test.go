package msm_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/fp"
	"github.com/consensys/pallas-msm/pallas/msm"
	"github.com/consensys/pallas-msm/pallas/msm/device/soft"
)

var testGenerator = mustPointFromXY(new(big.Int).Sub(pBig(), big.NewInt(1)), big.NewInt(2))

func pBig() *big.Int {
	v := new(big.Int)
	for i := 0; i < 8; i++ {
		v.Or(v, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(fp.P[i])), uint(32*i)))
	}
	return v
}

func mustPointFromXY(x, y *big.Int) curve.AffinePoint {
	return curve.AffinePoint{
		X: fp.NewElem(curve.LimbsFromBigInt(x)),
		Y: fp.NewElem(curve.LimbsFromBigInt(y)),
	}
}

func TestRunSinglePairIsScalarMul(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.Config{WindowBits: 4}

	got, err := msm.Run(dev, []fp.Limbs{{7}}, []curve.AffinePoint{testGenerator}, cfg)
	r.NoError(err)

	want := curve.ScalarMul(fp.Limbs{7}, testGenerator)
	r.True(got.X.Equal(want.X))
	r.True(got.Y.Equal(want.Y))
}

func TestRunScalarOneReturnsThePoint(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.DefaultConfig()

	got, err := msm.Run(dev, []fp.Limbs{{1}}, []curve.AffinePoint{testGenerator}, cfg)
	r.NoError(err)
	r.True(got.X.Equal(testGenerator.X))
	r.True(got.Y.Equal(testGenerator.Y))
}

func TestRunKAndNegKCancel(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.Config{WindowBits: 4}

	// -k is taken modulo the group order q (the Pallas scalar field), not
	// the base-field modulus p.
	q, _ := new(big.Int).SetString("40000000000000000000000000000000224698fc0994a8dd8c46eb2100000001", 16)
	k := fp.Limbs{42}
	negK := curve.LimbsFromBigInt(new(big.Int).Sub(q, big.NewInt(42)))

	got, err := msm.Run(dev, []fp.Limbs{k, negK}, []curve.AffinePoint{testGenerator, testGenerator}, cfg)
	r.NoError(err)
	r.True(got.IsIdentity())
}

func TestRunAllZeroScalarsIsIdentity(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.Config{WindowBits: 4}

	scalars := make([]fp.Limbs, 5)
	points := make([]curve.AffinePoint, 5)
	for i := range points {
		points[i] = testGenerator
	}

	got, err := msm.Run(dev, scalars, points, cfg)
	r.NoError(err)
	r.True(got.IsIdentity())
}

func TestRunPermutationInvariant(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.Config{WindowBits: 4}

	scalars := []fp.Limbs{{3}, {17}, {255}, {1}}
	points := []curve.AffinePoint{testGenerator, testGenerator, testGenerator, testGenerator}

	original, err := msm.Run(dev, scalars, points, cfg)
	r.NoError(err)

	permScalars := []fp.Limbs{scalars[3], scalars[1], scalars[0], scalars[2]}
	permPoints := []curve.AffinePoint{points[3], points[1], points[0], points[2]}
	permuted, err := msm.Run(dev, permScalars, permPoints, cfg)
	r.NoError(err)

	r.True(original.X.Equal(permuted.X))
	r.True(original.Y.Equal(permuted.Y))
}

func TestRunMatchesReferenceForRandomScalars(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.Config{WindowBits: 2}

	scalars := []fp.Limbs{{9}, {130}, {7}, {200}, {1000}, {0}, {1}, {65535}}
	points := make([]curve.AffinePoint, len(scalars))
	for i := range points {
		points[i] = testGenerator
	}

	got, err := msm.Run(dev, scalars, points, cfg)
	r.NoError(err)

	want, err := msm.Reference(scalars, points)
	r.NoError(err)

	r.True(got.X.Equal(want.X), "x mismatch")
	r.True(got.Y.Equal(want.Y), "y mismatch")
}

func TestRunWraparoundScalarPMinus1(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.Config{WindowBits: 8}

	pMinus1 := fp.SubNoBorrow(fp.P, fp.Limbs{1})
	got, err := msm.Run(dev, []fp.Limbs{pMinus1}, []curve.AffinePoint{testGenerator}, cfg)
	r.NoError(err)

	want, err := msm.Reference([]fp.Limbs{pMinus1}, []curve.AffinePoint{testGenerator})
	r.NoError(err)
	r.True(got.X.Equal(want.X))
	r.True(got.Y.Equal(want.Y))
}

// TestRunMultiBatchAccumulatesAcrossBatches forces a tiny per-batch buffer
// limit so N pairs split across several batches, exercising the pass-E
// reduction that combines the per-batch results — a path the pipeline's
// single-batch scenarios never reach.
func TestRunMultiBatchAccumulatesAcrossBatches(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	cfg := msm.Config{
		WindowBits:                  4,
		MaxStorageBufferBindingSize: 3 * msm.LimbBytes, // forces batches of 3 pairs
	}

	scalars := make([]fp.Limbs, 11)
	points := make([]curve.AffinePoint, 11)
	for i := range points {
		scalars[i] = fp.Limbs{uint32(i*13 + 1)}
		points[i] = testGenerator
	}

	got, err := msm.Run(dev, scalars, points, cfg)
	r.NoError(err)

	want, err := msm.Reference(scalars, points)
	r.NoError(err)
	r.True(got.X.Equal(want.X))
	r.True(got.Y.Equal(want.Y))
}

func TestRunRejectsEmptyInput(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	_, err := msm.Run(dev, nil, nil, msm.DefaultConfig())
	r.Error(err)
}

func TestRunRejectsMismatchedLengths(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	_, err := msm.Run(dev, []fp.Limbs{{1}, {2}}, []curve.AffinePoint{testGenerator}, msm.DefaultConfig())
	r.Error(err)
}

func TestRunRejectsWindowBitsOutOfRange(t *testing.T) {
	r := require.New(t)
	dev := soft.New()
	_, err := msm.Run(dev, []fp.Limbs{{1}}, []curve.AffinePoint{testGenerator}, msm.Config{WindowBits: 30})
	r.Error(err)
}

func TestReferenceRejectsEmptyInput(t *testing.T) {
	r := require.New(t)
	_, err := msm.Reference(nil, nil)
	r.Error(err)
}
