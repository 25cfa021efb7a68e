// Package curve implements the Pallas elliptic curve y^2 = x^3 + 5 over
// its base field, in projective coordinates with Montgomery-form
// coordinates, following the additive formulas in the multi-scalar
// multiplication pipeline this module supports.
//
// Every exported point operation takes and returns points whose X, Y, Z
// coordinates are in Montgomery form ([fp.Mont]); the only place plain
// field elements appear is at the affine boundary ([AffinePoint]).
package curve

import (
	"math/big"

	"github.com/consensys/pallas-msm/pallas/fp"
)

// bMont is the curve constant B in y^2 = x^3 + B, in Montgomery form (A is
// always 0 for Pallas).
var bMont = fp.ToMont(fp.NewElem(fp.Limbs{5}))

// AffinePoint is a point in affine coordinates. The sentinel (0,0)
// represents the identity/point at infinity; callers are responsible for
// supplying points that are actually on the curve, since the algorithm is
// agnostic to curve membership within field arithmetic.
type AffinePoint struct {
	X, Y fp.Elem
}

// IsIdentity reports whether p is the (0,0) infinity sentinel.
func (p AffinePoint) IsIdentity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + 5. The (0,0) identity
// sentinel is considered on-curve by convention, since it never
// participates in the curve equation check within this pipeline.
func (p AffinePoint) IsOnCurve() bool {
	if p.IsIdentity() {
		return true
	}
	x := fp.ToMont(p.X)
	y := fp.ToMont(p.Y)
	lhs := y.Square()
	rhs := x.Square().Mul(x).Add(bMont)
	return lhs.Equal(rhs)
}

// Projective is a point (X,Y,Z) in Jacobian projective coordinates, standing
// for the affine point (X/Z^2, Y/Z^3), with all coordinates in Montgomery
// form; Z=0 denotes the identity element.
type Projective struct {
	X, Y, Z fp.Mont
}

// IsIdentity reports whether p represents the group identity, i.e. Z=0.
func (p Projective) IsIdentity() bool { return p.Z.IsZero() }

// Identity returns the projective point at infinity.
func Identity() Projective { return Projective{} }

// ToProjective lifts an affine point into projective, Montgomery-form
// coordinates: X=to_mont(x), Y=to_mont(y), Z=to_mont(1). The identity
// sentinel maps to the projective identity (Z=0), matching the "no
// Montgomery conversion needed because 0*R=0" shortcut.
func ToProjective(p AffinePoint) Projective {
	if p.IsIdentity() {
		return Identity()
	}
	return Projective{
		X: fp.ToMont(p.X),
		Y: fp.ToMont(p.Y),
		Z: fp.One(),
	}
}

// ToAffine converts a projective point back to affine, plain-field
// coordinates. The identity maps to the (0,0) sentinel. Non-identity
// points compute Z^-1 once and multiply X by Z^-2 and Y by Z^-3 — a single
// from_mont per coordinate suffices, since X, Y and the powers of Z^-1 are
// all already in Montgomery form and mont_mul of two Montgomery values
// yields a Montgomery value.
func ToAffine(p Projective) AffinePoint {
	if p.IsIdentity() {
		return AffinePoint{}
	}
	zInv := p.Z.Inverse()
	zInv2 := zInv.Square()
	xMont := p.X.Mul(zInv2)
	yMont := p.Y.Mul(zInv2.Mul(zInv))
	return AffinePoint{
		X: fp.FromMont(xMont),
		Y: fp.FromMont(yMont),
	}
}

// Double implements the a=0 Jacobian-style doubling formula. Doubling the
// identity yields the identity.
func Double(p Projective) Projective {
	if p.IsIdentity() {
		return Identity()
	}
	X, Y, Z := p.X, p.Y, p.Z

	XX := X.Square()
	YY := Y.Square()
	YYYY := YY.Square()
	ZZ := Z.Square()

	xPlusYY := X.Add(YY)
	s := xPlusYY.Square().Sub(XX).Sub(YYYY).Double()
	m := XX.Triple()

	xOut := m.Square().Sub(s.Double())
	yOut := m.Mul(s.Sub(xOut)).Sub(YYYY.Double().Double().Double())
	yPlusZ := Y.Add(Z)
	zOut := yPlusZ.Square().Sub(YY).Sub(ZZ)

	return Projective{X: xOut, Y: yOut, Z: zOut}
}

// Add implements add-2007-bl, with the same-point fallback to Double and
// the standard identity/inverse-point special cases.
func Add(p, q Projective) Projective {
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}

	Z1Z1 := p.Z.Square()
	Z2Z2 := q.Z.Square()
	U1 := p.X.Mul(Z2Z2)
	U2 := q.X.Mul(Z1Z1)
	S1 := p.Y.Mul(q.Z).Mul(Z2Z2)
	S2 := q.Y.Mul(p.Z).Mul(Z1Z1)

	if U1.Equal(U2) {
		if S1.Equal(S2) {
			return Double(p)
		}
		return Identity()
	}

	H := U2.Sub(U1)
	I := H.Double().Square()
	J := H.Mul(I)
	r := S2.Sub(S1).Double()
	V := U1.Mul(I)

	X3 := r.Square().Sub(J).Sub(V.Double())
	Y3 := r.Mul(V.Sub(X3)).Sub(S1.Mul(J).Double())
	Z3 := p.Z.Add(q.Z).Square().Sub(Z1Z1).Sub(Z2Z2).Mul(H)

	return Projective{X: X3, Y: Y3, Z: Z3}
}

// ScalarMul performs double-and-add in projective coordinates on an affine
// input, scanning k LSB to MSB across 256 bits, and returns an affine result. It is used only by the per-pair reference path and tests; the
// production MSM pipeline uses the windowed Pippenger method in
// package msm instead.
func ScalarMul(k fp.Limbs, p AffinePoint) AffinePoint {
	base := ToProjective(p)
	acc := Identity()
	for limb := 0; limb < 8; limb++ {
		w := k[limb]
		for bit := 0; bit < 32; bit++ {
			if w&1 == 1 {
				acc = Add(acc, base)
			}
			base = Double(base)
			w >>= 1
		}
	}
	return ToAffine(acc)
}

// ScalarMulBigInt is a convenience wrapper accepting a math/big.Int
// scalar, reducing it into little-endian limbs via [LimbsFromBigInt]
// before delegating to [ScalarMul].
func ScalarMulBigInt(k *big.Int, p AffinePoint) AffinePoint {
	return ScalarMul(LimbsFromBigInt(k), p)
}

// LimbsFromBigInt converts a non-negative big.Int into little-endian
// 32-bit limbs, truncating to the low 256 bits, matching the "caller
// supplied reduction; core accepts up to 2^256-1" contract on [Scalar].
func LimbsFromBigInt(v *big.Int) fp.Limbs {
	var mod big.Int
	mod.Lsh(big.NewInt(1), 256)
	var truncated big.Int
	truncated.Mod(v, &mod)

	buf := make([]byte, 32)
	truncated.FillBytes(buf) // big-endian, 32 bytes

	var l fp.Limbs
	for i := 0; i < 8; i++ {
		be := 28 - i*4
		l[i] = uint32(buf[be])<<24 | uint32(buf[be+1])<<16 | uint32(buf[be+2])<<8 | uint32(buf[be+3])
	}
	return l
}

// BigIntFromLimbs is the inverse of [LimbsFromBigInt].
func BigIntFromLimbs(l fp.Limbs) *big.Int {
	buf := make([]byte, 32)
	for i := 0; i < 8; i++ {
		be := 28 - i*4
		buf[be] = byte(l[i] >> 24)
		buf[be+1] = byte(l[i] >> 16)
		buf[be+2] = byte(l[i] >> 8)
		buf[be+3] = byte(l[i])
	}
	return new(big.Int).SetBytes(buf)
}
