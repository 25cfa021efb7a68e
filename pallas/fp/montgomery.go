package fp

// P is the Pallas base field modulus, little-endian limbs:
//
//	p = 0x40000000_00000000_00000000_00000000_224698fc_094cf91b_992d30ed_00000001
var P = Limbs{0x00000001, 0x992d30ed, 0x094cf91b, 0x224698fc, 0x00000000, 0x00000000, 0x00000000, 0x40000000}

// PMinus2 is P-2, the Fermat exponent used by [Mont.Inverse].
var PMinus2 = Limbs{0xffffffff, 0x992d30ec, 0x094cf91b, 0x224698fc, 0x00000000, 0x00000000, 0x00000000, 0x40000000}

// RSquared is R^2 mod p, where R = 2^256. Multiplying a plain residue by
// this constant under Montgomery multiplication converts it to Montgomery
// form; this is the sole precomputed constant the reduction needs.
var RSquared = Limbs{0x0000000f, 0x8c78ecb3, 0x8b0de0e7, 0xd7d30dbd, 0xc3c95d18, 0x7797a99b, 0x7b9cb714, 0x096d41af}

// negPInv is -p^-1 mod 2^32, baked for Pallas.
const negPInv uint32 = 0xFFFFFFFF

// Elem is a field element known to lie in [0, p) in its plain (non-
// Montgomery) representation.
type Elem struct{ L Limbs }

// Mont is a field element stored in Montgomery form: L represents a*R mod
// p for some plain residue a, where R = 2^256.
type Mont struct{ L Limbs }

// NewElem wraps limbs already known to be < p.
func NewElem(l Limbs) Elem { return Elem{L: l} }

// IsZero reports whether e is the zero element.
func (e Elem) IsZero() bool { return e.L == Limbs{} }

// IsZero reports whether m is the Montgomery encoding of zero — which,
// since 0*R mod p = 0, is simply the all-zero limb pattern.
func (m Mont) IsZero() bool { return m.L == Limbs{} }

// Equal reports limb-wise equality. Both operands must be in the same
// (plain or Montgomery) representation for this to mean field equality.
func (e Elem) Equal(o Elem) bool { return e.L == o.L }

func (m Mont) Equal(o Mont) bool { return m.L == o.L }

// montReduce implements spec's mont_reduce: given T, a 512-bit accumulator
// as 16 little-endian 32-bit limbs, returns T*R^-1 mod p in [0, p).
func montReduce(t [16]uint32) Limbs {
	for i := 0; i < 8; i++ {
		m := t[i] * negPInv
		var carry uint32
		for j := 0; j < 8; j++ {
			var lo uint32
			lo, carry = MulAddCarry(m, P[j], t[i+j], carry)
			t[i+j] = lo
		}
		// propagate the final carry upward through limbs >= i+8.
		k := i + 8
		for carry != 0 && k < 16 {
			sum := t[k] + carry
			t[k] = sum
			if sum >= carry {
				carry = 0
			} else {
				carry = 1
			}
			k++
		}
	}

	var result Limbs
	copy(result[:], t[8:16])
	if Gte(result, P) {
		result = SubNoBorrow(result, P)
	}
	return result
}

// mulWide computes the schoolbook 8x8 -> 16 limb product of a and b.
func mulWide(a, b Limbs) [16]uint32 {
	var t [16]uint32
	for i := 0; i < 8; i++ {
		var carry uint32
		for j := 0; j < 8; j++ {
			var lo uint32
			lo, carry = MulAddCarry(a[i], b[j], t[i+j], carry)
			t[i+j] = lo
		}
		t[i+8] = carry
	}
	return t
}

// Mul returns a*b*R^-1 mod p — Montgomery multiplication. If m and o
// represent plain residues a', b' via a'*R and b'*R respectively, the
// result is the Montgomery encoding of a'*b'.
func (m Mont) Mul(o Mont) Mont {
	return Mont{L: montReduce(mulWide(m.L, o.L))}
}

// Square is Mul(m, m), kept as a named operation since curve arithmetic
// squares far more than it cross-multiplies.
func (m Mont) Square() Mont { return m.Mul(m) }

// Add returns the Montgomery-form sum; Montgomery form is additive, so
// this is exactly the underlying modular add.
func (m Mont) Add(o Mont) Mont { return Mont{L: AddMod(m.L, o.L, P)} }

// Sub returns the Montgomery-form difference.
func (m Mont) Sub(o Mont) Mont { return Mont{L: SubMod(m.L, o.L, P)} }

// Double returns 2*m.
func (m Mont) Double() Mont { return m.Add(m) }

// Triple returns 3*m.
func (m Mont) Triple() Mont { return m.Add(m).Add(m) }

// ToMont computes to_mont(a) = mont_mul(a, R^2 mod p).
func ToMont(a Elem) Mont {
	return Mont{L: montReduce(mulWide(a.L, RSquared))}
}

// FromMont computes from_mont(a) = mont_mul(a, 1).
func FromMont(m Mont) Elem {
	var one Limbs
	one[0] = 1
	return Elem{L: montReduce(mulWide(m.L, one))}
}

// One returns the Montgomery encoding of 1, i.e. R mod p.
func One() Mont {
	var one Limbs
	one[0] = 1
	return ToMont(Elem{L: one})
}

// Inverse computes the modular inverse of m by Fermat exponentiation to
// p-2, scanning the 256 bits of PMinus2 LSB to MSB, square-and-multiply,
// with both the running base and the accumulator kept in Montgomery form.
// The zero element has no inverse; Fermat's identity degenerates and this
// returns the Montgomery encoding of zero. Callers must not rely on this
// as a true inverse of zero.
func (m Mont) Inverse() Mont {
	acc := One()
	base := m
	for limb := 0; limb < 8; limb++ {
		e := PMinus2[limb]
		for bit := 0; bit < 32; bit++ {
			if e&1 == 1 {
				acc = acc.Mul(base)
			}
			base = base.Square()
			e >>= 1
		}
	}
	return acc
}
