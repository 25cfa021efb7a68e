package msm

import (
	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/errs"
	"github.com/consensys/pallas-msm/pallas/fp"
)

// Reference computes Σ k_i·P_i with the naive per-pair scalar_mul +
// point_add path, with no batching, bucketing, or device involved. It is
// the CPU cross-check spec §8's end-to-end scenarios call for, made a
// first-class exported function rather than test-internal scaffolding so
// callers can validate a device-backed Run against it directly.
func Reference(scalars []fp.Limbs, points []curve.AffinePoint) (curve.AffinePoint, error) {
	if len(points) == 0 || len(scalars) == 0 {
		return curve.AffinePoint{}, errs.NewInvalidArgument("N=0")
	}
	if len(scalars) != len(points) {
		return curve.AffinePoint{}, errs.NewInvalidArgument("len(scalars)=%d != len(points)=%d", len(scalars), len(points))
	}

	acc := curve.Identity()
	for i := range points {
		term := curve.ScalarMul(scalars[i], points[i])
		acc = curve.Add(acc, curve.ToProjective(term))
	}
	return curve.ToAffine(acc), nil
}
