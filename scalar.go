package sm

// Scalar is an integer modulo the curve order n, used throughout SM2's
// sign/verify and key-exchange arithmetic. Unlike Fp it is reduced with the
// generic BigInt256 division-based reduction rather than a Solinas table:
// the source only special-cases the field prime p, not the order n
// (see DESIGN.md, Open Question).
type Scalar struct {
	v BigInt256
}

// NewScalar reduces v modulo n using the generic reduction.
func NewScalar(v BigInt256) Scalar {
	return Scalar{v: modReduce512([8]uint64{
		v.Limbs[0], v.Limbs[1], v.Limbs[2], v.Limbs[3], 0, 0, 0, 0,
	}, N)}
}

// ScalarFromHex parses and reduces a hex literal modulo n.
func ScalarFromHex(s string) Scalar {
	return NewScalar(FromHex(s))
}

// IsZero reports whether s is zero.
func (s Scalar) IsZero() bool { return s.v.IsZero() }

// Value exposes the underlying reduced BigInt256.
func (s Scalar) Value() BigInt256 { return s.v }

// Add returns a + b mod n.
func (a Scalar) Add(b Scalar) Scalar { return Scalar{v: ModAdd(a.v, b.v, N)} }

// Sub returns a - b mod n.
func (a Scalar) Sub(b Scalar) Scalar { return Scalar{v: ModSub(a.v, b.v, N)} }

// Mul returns a * b mod n.
func (a Scalar) Mul(b Scalar) Scalar { return Scalar{v: ModMul(a.v, b.v, N)} }

// Inverse returns a^-1 mod n via Fermat's little theorem (n is prime).
func (a Scalar) Inverse() Scalar { return Scalar{v: ModInverse(a.v, N)} }

// InRange reports whether the scalar's value lies in [1, n), the range
// required of r, s, d and k throughout SM2.
func (a Scalar) InRange() bool {
	return !a.v.IsZero() && Compare(a.v, N) < 0
}
