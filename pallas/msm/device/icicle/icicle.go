//go:build icicle

// Package icicle would back [device.Device] with
// github.com/ingonyama-zk/icicle-gnark/v3's GPU MSM kernels, the same
// acceleration path the teacher wires in for its own bn254/bls12-381
// backends via backend/groth16/bn254/icicle. icicle-gnark's curve-specific
// MSM kernels do not cover Pallas as of v3.2.2, so New probes the runtime
// for a usable device (the curve-agnostic half of the SDK) purely for
// diagnostics, then always fails — see DESIGN.md.
package icicle

import (
	"fmt"
	"sync"

	icicleruntime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"

	"github.com/consensys/pallas-msm/internal/glog"
	"github.com/consensys/pallas-msm/pallas/errs"
	"github.com/consensys/pallas-msm/pallas/msm/device"
)

const HasIcicle = true

var onceWarmUp sync.Once

// New probes for a CUDA-capable device via icicle-gnark's runtime package,
// logs what it finds, and then reports that no Pallas MSM kernel exists to
// run on it. It returns an error rather than a Device so a caller who
// explicitly opts into the icicle build tag gets a clear failure instead of
// unknowingly running the CPU path.
func New() (device.Device, error) {
	onceWarmUp.Do(func() {
		log := glog.Logger()
		if err := icicleruntime.LoadBackendFromEnvOrDefault(); err != icicleruntime.Success {
			log.Debug().Str("icicle_error", err.AsString()).Msg("icicle backend load failed")
			return
		}
		dev := icicleruntime.CreateDevice("CUDA", 0)
		log.Debug().Int32("id", dev.Id).Str("type", dev.GetDeviceType()).Msg("icicle device probed")
	})
	return nil, errs.WrapDeviceResourceExhausted(fmt.Errorf("icicle-gnark has no Pallas curve MSM kernel"))
}
