// Command pallasmsm-bench is an internal benchmark, not a public CLI (a
// full command surface is out of scope for this module). It runs the
// windowed Pippenger pipeline over a generated or cached (scalar, point)
// fixture and reports elapsed time, the same "generate, time, print CSV"
// shape benchmark/benchmark/main.go uses for gnark's own R1CS proving
// benchmark.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"time"

	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/fp"
	"github.com/consensys/pallas-msm/pallas/hostglue"
	"github.com/consensys/pallas-msm/pallas/msm"
	"github.com/consensys/pallas-msm/pallas/msm/device/soft"
)

func main() {
	n := flag.Int("n", 1<<20, "number of (scalar,point) pairs")
	windowBits := flag.Uint("window-bits", 16, "Pippenger window width")
	cachePath := flag.String("cache", "", "CBOR fixture cache path; generated on first miss")
	flag.Parse()

	fixture, err := loadOrGenerateFixture(*cachePath, *n)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fixture:", err)
		os.Exit(1)
	}

	dev := soft.New()
	cfg := msm.Config{WindowBits: uint32(*windowBits), Verbose: true}

	start := time.Now()
	_, err = msm.Run(dev, fixture.Scalars, fixture.Points, cfg)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}

	fmt.Printf("n=%d,window_bits=%d,elapsed_ms=%d\n", len(fixture.Points), *windowBits, elapsed.Milliseconds())
}

func loadOrGenerateFixture(cachePath string, n int) (hostglue.Fixture, error) {
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			return hostglue.DecodeFixture(data)
		}
	}

	fixture := generateFixture(n)

	if cachePath != "" {
		data, err := hostglue.EncodeFixture(fixture)
		if err != nil {
			return hostglue.Fixture{}, err
		}
		if err := os.WriteFile(cachePath, data, 0o644); err != nil {
			return hostglue.Fixture{}, err
		}
	}
	return fixture, nil
}

// generateFixture produces N pairs (k_i, P) with P a fixed on-curve point
// and k_i pseudo-random 64-bit scalars extended into 256-bit limbs — enough
// entropy to exercise every bucket at reasonable window widths without
// paying for a modular square root per point.
func generateFixture(n int) hostglue.Fixture {
	pBig := new(big.Int)
	for i := 0; i < 8; i++ {
		pBig.Or(pBig, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(fp.P[i])), uint(32*i)))
	}
	gx := new(big.Int).Sub(pBig, big.NewInt(1))
	point := curve.AffinePoint{
		X: fp.NewElem(curve.LimbsFromBigInt(gx)),
		Y: fp.NewElem(curve.LimbsFromBigInt(big.NewInt(2))),
	}

	rng := rand.New(rand.NewSource(1))
	scalars := make([]fp.Limbs, n)
	points := make([]curve.AffinePoint, n)
	for i := 0; i < n; i++ {
		scalars[i] = fp.Limbs{rng.Uint32(), rng.Uint32()}
		points[i] = point
	}
	return hostglue.Fixture{Scalars: scalars, Points: points}
}
