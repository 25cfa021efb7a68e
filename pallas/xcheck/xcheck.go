// Package xcheck is the "Field-library constants cross-check" external
// collaborator spec.md's Out-of-scope list mentions but does not define:
// an independent field-arithmetic implementation the core's own baked
// Pallas constants can be checked against.
//
// It cross-verifies against github.com/coinbase/kryptology's pasta fp
// package (an independently authored Pallas base-field implementation —
// see _examples/other_examples/0xPolygon-polygon-edge__pallas_curve.go
// for the reference usage this package's API calls are grounded on), not
// against gnark-crypto, which does not ship Pasta-curve support.
//
// Nothing in package fp, curve, or msm imports this package: it exists
// purely for _test.go files to call, matching "described only where the
// core consumes it" — the core never consumes it at runtime, only at
// test time.
package xcheck

import (
	"math/big"

	"github.com/coinbase/kryptology/pkg/core/curves/native/pasta/fp"

	pallasfp "github.com/consensys/pallas-msm/pallas/fp"
)

// ModulusAgrees reports whether the core's baked modulus P reduces to
// zero under kryptology's independent Fp implementation — the strongest
// two-implementation agreement check available without kryptology
// exporting its modulus directly: a 255-bit value that a from a
// completely separate field library reduces to exactly zero can only be
// a multiple of that library's modulus, and since P is itself prime and
// of the same bit length, that multiple must be 1.
func ModulusAgrees() bool {
	pOurs := bigIntFromLimbs(pallasfp.P)
	reduced := new(fp.Fp).SetBigInt(pOurs).BigInt()
	return reduced.Sign() == 0
}

// AddAgrees cross-checks (a+b) mod p between this module's AddMod and
// kryptology's independent Fp arithmetic.
func AddAgrees(a, b *big.Int) bool {
	ours := montAdd(a, b)
	theirs := new(fp.Fp).Add(new(fp.Fp).SetBigInt(a), new(fp.Fp).SetBigInt(b)).BigInt()
	return ours.Cmp(theirs) == 0
}

// MulAgrees cross-checks (a*b) mod p the same way.
func MulAgrees(a, b *big.Int) bool {
	ours := montMul(a, b)
	theirs := new(fp.Fp).Mul(new(fp.Fp).SetBigInt(a), new(fp.Fp).SetBigInt(b)).BigInt()
	return ours.Cmp(theirs) == 0
}

// InverseAgrees cross-checks a^-1 mod p for nonzero a.
func InverseAgrees(a *big.Int) bool {
	ours := montInv(a)
	theirs, invertible := new(fp.Fp).Invert(new(fp.Fp).SetBigInt(a))
	if !invertible {
		return a.Sign() == 0
	}
	return ours.Cmp(theirs.BigInt()) == 0
}

func montAdd(a, b *big.Int) *big.Int {
	l := pallasfp.AddMod(limbsFromBigInt(a), limbsFromBigInt(b), pallasfp.P)
	return bigIntFromLimbs(l)
}

func montMul(a, b *big.Int) *big.Int {
	am := pallasfp.ToMont(pallasfp.NewElem(limbsFromBigInt(a)))
	bm := pallasfp.ToMont(pallasfp.NewElem(limbsFromBigInt(b)))
	r := pallasfp.FromMont(am.Mul(bm))
	return bigIntFromLimbs(r.L)
}

func montInv(a *big.Int) *big.Int {
	am := pallasfp.ToMont(pallasfp.NewElem(limbsFromBigInt(a)))
	r := pallasfp.FromMont(am.Inverse())
	return bigIntFromLimbs(r.L)
}

func limbsFromBigInt(v *big.Int) pallasfp.Limbs {
	buf := make([]byte, 32)
	new(big.Int).Mod(v, modulus256).FillBytes(buf)
	var l pallasfp.Limbs
	for i := 0; i < 8; i++ {
		be := 28 - i*4
		l[i] = uint32(buf[be])<<24 | uint32(buf[be+1])<<16 | uint32(buf[be+2])<<8 | uint32(buf[be+3])
	}
	return l
}

func bigIntFromLimbs(l pallasfp.Limbs) *big.Int {
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

var modulus256 = new(big.Int).Lsh(big.NewInt(1), 256)
