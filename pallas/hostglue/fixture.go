package hostglue

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/pallas-msm/pallas/curve"
	"github.com/consensys/pallas-msm/pallas/fp"
)

// Fixture bundles a scalar/point input set for the benchmark harness so a
// generated multi-million-pair run can be cached across invocations
// instead of regenerated every time, following the same
// CBOR-encode-the-body approach the teacher uses for its constraint
// system's non-binary sections (constraint.System.toBytes).
type Fixture struct {
	Scalars []fp.Limbs
	Points  []curve.AffinePoint
}

// wirePoint (and the [8]uint32 scalars toWire produces) give CBOR a plain
// array-of-uint32 shape to encode instead of relying on cbor's reflection over [8]uint32, which
// round-trips fine on its own but this keeps the wire format explicit
// and stable regardless of struct tag defaults.
type wirePoint struct {
	X, Y [8]uint32
}

func (f Fixture) toWire() ([][8]uint32, []wirePoint) {
	scalars := make([][8]uint32, len(f.Scalars))
	for i, s := range f.Scalars {
		scalars[i] = [8]uint32(s)
	}
	points := make([]wirePoint, len(f.Points))
	for i, p := range f.Points {
		points[i] = wirePoint{X: [8]uint32(p.X.L), Y: [8]uint32(p.Y.L)}
	}
	return scalars, points
}

// EncodeFixture serializes a Fixture with CBOR.
func EncodeFixture(f Fixture) ([]byte, error) {
	scalars, points := f.toWire()
	buf := new(bytes.Buffer)
	enc := cbor.NewEncoder(buf)
	if err := enc.Encode(struct {
		Scalars [][8]uint32
		Points  []wirePoint
	}{scalars, points}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFixture is the inverse of EncodeFixture.
func DecodeFixture(data []byte) (Fixture, error) {
	var wire struct {
		Scalars [][8]uint32
		Points  []wirePoint
	}
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return Fixture{}, err
	}
	f := Fixture{
		Scalars: make([]fp.Limbs, len(wire.Scalars)),
		Points:  make([]curve.AffinePoint, len(wire.Points)),
	}
	for i, s := range wire.Scalars {
		f.Scalars[i] = fp.Limbs(s)
	}
	for i, p := range wire.Points {
		f.Points[i] = curve.AffinePoint{
			X: fp.NewElem(fp.Limbs(p.X)),
			Y: fp.NewElem(fp.Limbs(p.Y)),
		}
	}
	return f, nil
}
