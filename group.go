package sm

// A is the SM2 curve coefficient a = p - 3.
var A = FpFromHex("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFC")

// B is the SM2 curve coefficient b.
var B = FpFromHex("28E9FA9E9D9F5E344D5A9E4BCF6509A7F39789F515AB8F92DDBCBD414D940E93")

// Gx, Gy are the coordinates of the SM2 generator point.
var (
	Gx = FpFromHex("32C4AE2C1F1981195F9904466A39C9948FE30BBFF2660BE1715A4589334C74C7")
	Gy = FpFromHex("BC3736A2F4F6779C59BDCEE36B692153D0A9877CC62A474002DF32E52139F0A0")
)

// N is the order of the SM2 generator subgroup.
var N = BigInt256{Limbs: [4]uint64{
	0x53BBF40939D54123, 0x7203DF6B21C6052B,
	0xFFFFFFFFFFFFFFFF, 0xFFFFFFFEFFFFFFFF,
}}

// Affine is a point on the SM2 curve in affine coordinates, or the group
// identity ("point at infinity") when Infinity is true (X, Y are then
// unspecified).
type Affine struct {
	X, Y     Fp
	Infinity bool
}

// jacobian is the internal Jacobian representation (X, Y, Z) used for
// doubling and mixed addition; Z = 0 denotes the identity.
type jacobian struct {
	X, Y, Z Fp
}

// InfinityPoint returns the group identity.
func InfinityPoint() Affine {
	return Affine{X: FpZero(), Y: FpZero(), Infinity: true}
}

// GeneratorPoint returns the SM2 base point G.
func GeneratorPoint() Affine {
	return Affine{X: Gx, Y: Gy}
}

// NewAffine constructs a non-identity affine point.
func NewAffine(x, y Fp) Affine {
	return Affine{X: x, Y: y}
}

// FromHexEncoded parses an uncompressed "04"||X||Y point encoding. Any other
// encoding (including "00" or malformed input) yields the identity; callers
// that need to reject malformed input must check IsOnCurve afterwards.
func FromHexEncoded(hex string) Affine {
	data := HexToBytes(hex)
	if len(data) == 0 || data[0] != 0x04 || len(data) != 65 {
		return InfinityPoint()
	}
	x := NewFp(FromBEBytes(data[1:33]))
	y := NewFp(FromBEBytes(data[33:65]))
	return NewAffine(x, y)
}

// ToHexEncoded renders p as "04"||X||Y, or "00" for the identity.
func (p Affine) ToHexEncoded() string {
	if p.Infinity {
		return "00"
	}
	var encoded [65]byte
	encoded[0] = 0x04
	xb := p.X.ToBEBytes()
	yb := p.Y.ToBEBytes()
	copy(encoded[1:33], xb[:])
	copy(encoded[33:65], yb[:])
	return BytesToHex(encoded[:])
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + a*x + b. The identity is
// always considered on-curve.
func (p Affine) IsOnCurve() bool {
	if p.Infinity {
		return true
	}
	lhs := p.Y.Square()
	x2PlusA := p.X.Square().Add(A)
	rhs := x2PlusA.Mul(p.X).Add(B)
	return lhs.Equal(rhs)
}

func jacInfinity() jacobian {
	return jacobian{X: FpOne(), Y: FpOne(), Z: FpZero()}
}

func jacFromAffine(p Affine) jacobian {
	if p.Infinity {
		return jacInfinity()
	}
	return jacobian{X: p.X, Y: p.Y, Z: FpOne()}
}

func (j jacobian) toAffine() Affine {
	if j.Z.IsZero() {
		return InfinityPoint()
	}
	zinv := j.Z.Invert()
	zinv2 := zinv.Square()
	zinv3 := zinv2.Mul(zinv)
	x := j.X.Mul(zinv2)
	y := j.Y.Mul(zinv3)
	return NewAffine(x, y)
}

// double implements dbl-2001-b, optimized for a = -3.
func (j jacobian) double() jacobian {
	if j.Z.IsZero() || j.Y.IsZero() {
		return jacInfinity()
	}

	delta := j.Z.Square()
	gamma := j.Y.Square()
	beta := j.X.Mul(gamma)

	alpha := j.X.Sub(delta).Mul(j.X.Add(delta)).Triple()

	beta8 := beta.Double().Double().Double()
	x3 := alpha.Square().Sub(beta8)

	z3 := j.Y.Add(j.Z).Square().Sub(gamma).Sub(delta)

	beta4 := beta.Double().Double()
	gammaSq8 := gamma.Square().Double().Double().Double()
	y3 := alpha.Mul(beta4.Sub(x3)).Sub(gammaSq8)

	return jacobian{X: x3, Y: y3, Z: z3}
}

// addAffine implements mixed Jacobian+affine addition.
func (j jacobian) addAffine(q Affine) jacobian {
	if q.Infinity {
		return j
	}
	if j.Z.IsZero() {
		return jacFromAffine(q)
	}

	z1z1 := j.Z.Square()
	u2 := q.X.Mul(z1z1)
	s2 := q.Y.Mul(j.Z).Mul(z1z1)
	h := u2.Sub(j.X)
	r := s2.Sub(j.Y)

	if h.IsZero() {
		if r.IsZero() {
			return j.double()
		}
		return jacInfinity()
	}

	hh := h.Square()
	hhh := hh.Mul(h)
	x1hh := j.X.Mul(hh)
	x3 := r.Square().Sub(hhh).Sub(x1hh.Double())
	y3 := r.Mul(x1hh.Sub(x3)).Sub(j.Y.Mul(hhh))
	z3 := j.Z.Mul(h)

	return jacobian{X: x3, Y: y3, Z: z3}
}

// Add returns p + q in affine coordinates.
func Add(p, q Affine) Affine {
	if p.Infinity {
		return q
	}
	if q.Infinity {
		return p
	}
	jp := jacFromAffine(p)
	return jp.addAffine(q).toAffine()
}

// Multiply returns k*p using left-to-right double-and-add, non-constant-time
// by design (see DESIGN.md).
func Multiply(p Affine, k BigInt256) Affine {
	if k.IsZero() || p.Infinity {
		return InfinityPoint()
	}
	if k.IsOne() {
		return p
	}

	result := jacInfinity()
	bitLen := k.BitLength()
	for i := bitLen - 1; i >= 0; i-- {
		result = result.double()
		if k.GetBit(i) {
			result = result.addAffine(p)
		}
	}
	return result.toAffine()
}
