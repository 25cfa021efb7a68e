//go:build !icicle

package icicle

import (
	"fmt"

	"github.com/consensys/pallas-msm/pallas/msm/device"
)

const HasIcicle = false

// New reports that the binary was built without the icicle build tag,
// mirroring backend/groth16/bn254/icicle/noicicle.go's fallback message.
func New() (device.Device, error) {
	return nil, fmt.Errorf("icicle device requested but program compiled without 'icicle' build tag")
}
