// Package errs defines the error taxonomy an MSM call can surface.
//
// Every error the pallas core returns is one of the four kinds below,
// matching the failure model of the host orchestrator: an MSM call either
// fails synchronously before touching the device, fails because the device
// could not satisfy a resource request, fails because the device connection
// itself is gone, or (test-time only) trips an internal invariant.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the four kinds. Use errors.Is against these,
// not against the wrapped Kind* struct values, since the struct carries a
// cause that changes from call to call.
var (
	ErrInvalidArgument           = errors.New("invalid argument")
	ErrDeviceResourceExhausted   = errors.New("device resource exhausted")
	ErrDeviceLost                = errors.New("device lost")
	ErrInternalInvariantViolated = errors.New("internal invariant violated")
)

// InvalidArgument reports a synchronous, pre-dispatch input validation
// failure: N=0, len(scalars) != len(points), or window_bits outside
// [1,22]. No device resources are ever allocated when this is returned.
type InvalidArgument struct {
	Msg string
}

func (e *InvalidArgument) Error() string { return "invalid argument: " + e.Msg }
func (e *InvalidArgument) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgument builds an InvalidArgument with a formatted message.
func NewInvalidArgument(format string, args ...any) error {
	return &InvalidArgument{Msg: fmt.Sprintf(format, args...)}
}

// DeviceResourceExhausted wraps a buffer-creation or dispatch failure
// surfaced by the underlying compute runtime. Any buffers allocated before
// the failure must be released by the caller of the device boundary before
// this error propagates further.
type DeviceResourceExhausted struct {
	Cause error
}

func (e *DeviceResourceExhausted) Error() string {
	return fmt.Sprintf("device resource exhausted: %v", e.Cause)
}
func (e *DeviceResourceExhausted) Unwrap() error { return ErrDeviceResourceExhausted }

// WrapDeviceResourceExhausted builds a DeviceResourceExhausted from a cause.
func WrapDeviceResourceExhausted(cause error) error {
	return &DeviceResourceExhausted{Cause: cause}
}

// DeviceLost reports a submission or buffer-map failure indicating the
// device connection is gone. The caller must acquire a new device before
// retrying; the failing MSM call is aborted with no partial result.
type DeviceLost struct {
	Cause error
}

func (e *DeviceLost) Error() string { return fmt.Sprintf("device lost: %v", e.Cause) }
func (e *DeviceLost) Unwrap() error { return ErrDeviceLost }

// WrapDeviceLost builds a DeviceLost from an underlying cause.
func WrapDeviceLost(cause error) error {
	return &DeviceLost{Cause: cause}
}

// InternalInvariantViolated is raised only by tests and cross-checks: a
// Montgomery constant, bucket invariant, or reference cross-check
// disagreed with the production path. Production code paths reachable
// from caller input never return this.
type InternalInvariantViolated struct {
	Msg string
}

func (e *InternalInvariantViolated) Error() string {
	return "internal invariant violated: " + e.Msg
}
func (e *InternalInvariantViolated) Unwrap() error { return ErrInternalInvariantViolated }

// NewInternalInvariantViolated builds an InternalInvariantViolated with a
// formatted message.
func NewInternalInvariantViolated(format string, args ...any) error {
	return &InternalInvariantViolated{Msg: fmt.Sprintf(format, args...)}
}
