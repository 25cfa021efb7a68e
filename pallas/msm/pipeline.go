package msm

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/consensys/pallas-msm/internal/glog"
	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/errs"
	"github.com/consensys/pallas-msm/pallas/fp"
	"github.com/consensys/pallas-msm/pallas/msm/device"
)

// Run computes Q = Σ k_i·P_i over the Pallas group using the windowed
// Pippenger method, driving the five-pass-plus-terminal schedule (A,
// Bi1+Bi2, C, D, E) through dev.
//
// Failure modes match spec §7: N=0, len(scalars)!=len(points), or a
// window width above 22 return an InvalidArgument before dev is touched at
// all. A window width of zero is replaced by the default of 8.
func Run(dev device.Device, scalars []fp.Limbs, points []curve.AffinePoint, cfg Config) (curve.AffinePoint, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return curve.AffinePoint{}, err
	}
	if len(points) == 0 || len(scalars) == 0 {
		return curve.AffinePoint{}, errs.NewInvalidArgument("N=0")
	}
	if len(scalars) != len(points) {
		return curve.AffinePoint{}, errs.NewInvalidArgument("len(scalars)=%d != len(points)=%d", len(scalars), len(points))
	}

	start := time.Now()
	log := glog.Logger().With().
		Int("n", len(points)).
		Uint32("window_bits", cfg.WindowBits).
		Logger()

	chunkN := cfg.maxChunkN()
	if chunkN <= 0 {
		return curve.AffinePoint{}, errs.NewInvalidArgument("maxStorageBufferBindingSize too small for one Limbs256 element")
	}
	nb := ceilDiv(len(points), chunkN)

	log = log.With().Int("nb_batches", nb).Logger()

	batchFinals := make([]curve.Projective, 0, nb)
	for b := 0; b < nb; b++ {
		lo := b * chunkN
		hi := lo + chunkN
		if hi > len(points) {
			hi = len(points)
		}
		batchResult, err := runBatch(dev, scalars[lo:hi], points[lo:hi], cfg, log)
		if err != nil {
			return curve.AffinePoint{}, err
		}
		batchFinals = append(batchFinals, batchResult)
	}

	// Pass E: reduce across batches, then to_affine.
	final := dev.TreeReduce(batchFinals)
	out := curve.ToAffine(final)

	if cfg.Verbose {
		log.Info().Dur("elapsed", time.Since(start)).Msg("msm complete")
	} else {
		log.Debug().Dur("elapsed", time.Since(start)).Msg("msm complete")
	}
	return out, nil
}

// runBatch runs one batch through pass A, every Pippenger window's
// Bi1+Bi2+C, and folds the per-window contributions into a single
// projective point via the standard Horner/double-and-add recurrence:
// acc = Σ_m 2^(m·w)·windowSum_m, processed from the most significant
// window down so each step is one w-fold doubling plus one add. Spec §4.4
// does not name this fold explicitly (its data-flow diagram shows a
// single pass through Bi1/Bi2/C per batch), but it is the only way the
// pipeline's window extraction formula produces a correct 256-bit result
// for window widths under 256 — see DESIGN.md.
func runBatch(dev device.Device, scalars []fp.Limbs, points []curve.AffinePoint, cfg Config, log zerolog.Logger) (curve.Projective, error) {
	projective := dev.AffineToProjective(points)

	numWindows := NumWindows(cfg.WindowBits)
	B := cfg.numBuckets()

	acc := curve.Identity()
	for m := int(numWindows) - 1; m >= 0; m-- {
		// fold in w doublings for every window below the top one.
		for i := uint32(0); i < cfg.WindowBits && m != int(numWindows)-1; i++ {
			acc = curve.Double(acc)
		}

		buckets := make([]curve.Projective, B)
		for i := range buckets {
			buckets[i] = curve.Identity()
		}
		if err := dev.AccumulateWindowBuckets(scalars, projective, uint32(m), cfg.WindowBits, cfg.IncludeBucketZero, buckets); err != nil {
			return curve.Projective{}, errs.WrapDeviceResourceExhausted(err)
		}
		windowSum := dev.WeightedBucketSum(buckets)
		acc = curve.Add(acc, windowSum)
		log.Debug().Int("window", m).Uint32("num_buckets", B).Msg("dispatched Bi1+Bi2+C")
	}

	return acc, nil
}
