package soft

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/fp"
)

func testPoint() curve.AffinePoint {
	pBig := new(big.Int)
	for i := 0; i < 8; i++ {
		pBig.Or(pBig, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(fp.P[i])), uint(32*i)))
	}
	x := new(big.Int).Sub(pBig, big.NewInt(1))
	return curve.AffinePoint{
		X: fp.NewElem(curve.LimbsFromBigInt(x)),
		Y: fp.NewElem(curve.LimbsFromBigInt(big.NewInt(2))),
	}
}

func TestAffineToProjectiveRoundTrips(t *testing.T) {
	r := require.New(t)
	d := New()
	p := testPoint()
	out := d.AffineToProjective([]curve.AffinePoint{p, p, p})
	r.Len(out, 3)
	for _, proj := range out {
		back := curve.ToAffine(proj)
		r.True(back.X.Equal(p.X))
		r.True(back.Y.Equal(p.Y))
	}
}

func TestAffineToProjectiveEmpty(t *testing.T) {
	d := New()
	out := d.AffineToProjective(nil)
	require.Empty(t, out)
}

func TestAccumulateWindowBucketsSkipsZeroByDefault(t *testing.T) {
	r := require.New(t)
	d := New()
	p := curve.ToProjective(testPoint())

	scalars := []fp.Limbs{{0}, {0}}
	points := []curve.Projective{p, p}
	buckets := make([]curve.Projective, 4)
	for i := range buckets {
		buckets[i] = curve.Identity()
	}

	err := d.AccumulateWindowBuckets(scalars, points, 0, 2, false, buckets)
	r.NoError(err)
	for _, b := range buckets {
		r.True(b.IsIdentity())
	}
}

func TestAccumulateWindowBucketsIncludesZeroWhenRequested(t *testing.T) {
	r := require.New(t)
	d := New()
	p := curve.ToProjective(testPoint())

	scalars := []fp.Limbs{{0}}
	points := []curve.Projective{p}
	buckets := make([]curve.Projective, 4)
	for i := range buckets {
		buckets[i] = curve.Identity()
	}

	err := d.AccumulateWindowBuckets(scalars, points, 0, 2, true, buckets)
	r.NoError(err)
	r.False(buckets[0].IsIdentity())
}

func TestAccumulateWindowBucketsAdditive(t *testing.T) {
	r := require.New(t)
	d := New()
	p := curve.ToProjective(testPoint())

	scalars := []fp.Limbs{{1}}
	points := []curve.Projective{p}
	buckets := make([]curve.Projective, 4)
	for i := range buckets {
		buckets[i] = curve.Identity()
	}

	r.NoError(d.AccumulateWindowBuckets(scalars, points, 0, 2, false, buckets))
	r.NoError(d.AccumulateWindowBuckets(scalars, points, 0, 2, false, buckets))

	// bucket[1] should now hold 2*p, having accumulated across two calls
	// rather than been overwritten by the second.
	want := curve.Double(p)
	got := curve.ToAffine(buckets[1])
	wantAffine := curve.ToAffine(want)
	r.True(got.X.Equal(wantAffine.X))
	r.True(got.Y.Equal(wantAffine.Y))
}

func TestWeightedBucketSumMatchesNaiveWeighting(t *testing.T) {
	r := require.New(t)
	d := New()
	p := curve.ToProjective(testPoint())

	scalars := []fp.Limbs{{1}, {2}, {3}}
	points := []curve.Projective{p, p, p}
	buckets := make([]curve.Projective, 4)
	for i := range buckets {
		buckets[i] = curve.Identity()
	}
	r.NoError(d.AccumulateWindowBuckets(scalars, points, 0, 2, false, buckets))

	got := d.WeightedBucketSum(buckets)

	// naive Sum_{idx=1}^{3} idx * bucket[idx]
	naive := curve.Identity()
	for idx := 1; idx < len(buckets); idx++ {
		for i := 0; i < idx; i++ {
			naive = curve.Add(naive, buckets[idx])
		}
	}

	gotA := curve.ToAffine(got)
	naiveA := curve.ToAffine(naive)
	r.True(gotA.X.Equal(naiveA.X))
	r.True(gotA.Y.Equal(naiveA.Y))
}

func TestTreeReduceEven(t *testing.T) {
	r := require.New(t)
	d := New()
	p := curve.ToProjective(testPoint())
	points := []curve.Projective{p, p, p, p}
	got := d.TreeReduce(points)
	want := curve.Double(curve.Double(p))
	gotA := curve.ToAffine(got)
	wantA := curve.ToAffine(want)
	r.True(gotA.X.Equal(wantA.X))
	r.True(gotA.Y.Equal(wantA.Y))
}

func TestTreeReduceOdd(t *testing.T) {
	r := require.New(t)
	d := New()
	p := curve.ToProjective(testPoint())
	points := []curve.Projective{p, p, p, p, p}
	got := d.TreeReduce(points)

	want := curve.Identity()
	for i := 0; i < 5; i++ {
		want = curve.Add(want, p)
	}
	gotA := curve.ToAffine(got)
	wantA := curve.ToAffine(want)
	r.True(gotA.X.Equal(wantA.X))
	r.True(gotA.Y.Equal(wantA.Y))
}

func TestTreeReduceSingle(t *testing.T) {
	r := require.New(t)
	d := New()
	p := curve.ToProjective(testPoint())
	got := d.TreeReduce([]curve.Projective{p})
	gotA := curve.ToAffine(got)
	wantA := curve.ToAffine(p)
	r.True(gotA.X.Equal(wantA.X))
	r.True(gotA.Y.Equal(wantA.Y))
}

func TestTreeReduceEmpty(t *testing.T) {
	r := require.New(t)
	d := New()
	got := d.TreeReduce(nil)
	r.True(got.IsIdentity())
}
