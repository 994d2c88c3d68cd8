package sm

// Fp is a field element modulo the SM2 prime p. All public operations return
// a fully reduced representative in [0, p).
type Fp struct {
	v BigInt256
}

// P is the SM2 base-field prime: 2^256 - 2^224 - 2^96 + 2^64 - 1.
var P = BigInt256{Limbs: [4]uint64{
	0xFFFFFFFFFFFFFFFF, 0xFFFFFFFF00000000,
	0xFFFFFFFFFFFFFFFF, 0xFFFFFFFEFFFFFFFF,
}}

// NewFp reduces v by a single conditional subtraction of p. Callers must
// ensure v < 2p; for arbitrary input, reduce generically first.
func NewFp(v BigInt256) Fp {
	if Compare(v, P) >= 0 {
		v = ModSub(v, P, P)
	}
	return Fp{v: v}
}

// FpFromHex parses a hex literal and reduces it into Fp.
func FpFromHex(s string) Fp {
	return NewFp(FromHex(s))
}

// FpZero returns the additive identity.
func FpZero() Fp { return Fp{} }

// FpOne returns the multiplicative identity.
func FpOne() Fp { return Fp{v: One()} }

// IsZero reports whether a is zero.
func (a Fp) IsZero() bool { return a.v.IsZero() }

// Equal reports value equality of the reduced representations.
func (a Fp) Equal(b Fp) bool { return Compare(a.v, b.v) == 0 }

// Add returns a + b mod p.
func (a Fp) Add(b Fp) Fp { return Fp{v: ModAdd(a.v, b.v, P)} }

// Sub returns a - b mod p.
func (a Fp) Sub(b Fp) Fp { return Fp{v: ModSub(a.v, b.v, P)} }

// Mul returns a * b mod p via the Solinas fast reduction.
func (a Fp) Mul(b Fp) Fp { return Fp{v: sm2MulP(a.v, b.v)} }

// Square returns a^2 mod p via the Solinas fast reduction.
func (a Fp) Square() Fp { return Fp{v: sm2SquareP(a.v)} }

// Negate returns -a mod p (p - a, or 0 if a is zero).
func (a Fp) Negate() Fp {
	if a.IsZero() {
		return a
	}
	return Fp{v: ModSub(P, a.v, P)}
}

// Invert returns a^(p-2) mod p, computed with the Solinas-aware
// square-and-multiply (not the generic BigInt256 ModPow).
func (a Fp) Invert() Fp {
	two := BigInt256{Limbs: [4]uint64{2, 0, 0, 0}}
	pm2, _ := Sub(P, two)
	result := One()
	base := a.v
	bitLen := pm2.BitLength()
	for i := 0; i < bitLen; i++ {
		if pm2.GetBit(i) {
			result = sm2MulP(result, base)
		}
		base = sm2SquareP(base)
	}
	return Fp{v: result}
}

// Double returns a + a.
func (a Fp) Double() Fp { return a.Add(a) }

// Triple returns 2a + a (two adds, not a scalar multiplication).
func (a Fp) Triple() Fp { return a.Double().Add(a) }

// ToBEBytes encodes a as 32 big-endian bytes.
func (a Fp) ToBEBytes() [32]byte { return a.v.ToBEBytes() }

// Value exposes the underlying reduced BigInt256.
func (a Fp) Value() BigInt256 { return a.v }

// sm2Rows is the fixed 8x8 Solinas reduction matrix for
// p = 2^256 - 2^224 - 2^96 + 2^64 - 1, rows indexed by the high word c[i+8],
// columns by the output word j.
var sm2Rows = [8][8]int64{
	{1, 0, -1, 1, 0, 0, 0, 1},
	{1, 1, -1, 0, 1, 0, 0, 1},
	{1, 1, 0, 0, 0, 1, 0, 1},
	{1, 1, 0, 1, 0, 0, 1, 1},
	{1, 1, 0, 1, 1, 0, 0, 2},
	{2, 1, -1, 2, 1, 1, 0, 2},
	{2, 2, -1, 1, 2, 1, 1, 2},
	{2, 2, 0, 1, 1, 2, 1, 3},
}

// sm2ModReduceP reduces a 512-bit product (eight little-endian 64-bit limbs)
// modulo the SM2 prime using the Solinas table above.
func sm2ModReduceP(c [8]uint64) BigInt256 {
	w := func(i int) int64 {
		if i%2 == 0 {
			return int64(c[i/2] & 0xFFFFFFFF)
		}
		return int64(c[i/2] >> 32)
	}

	var acc [9]int64
	for j := 0; j < 8; j++ {
		acc[j] = w(j)
		for i := 0; i < 8; i++ {
			acc[j] += w(i+8) * sm2Rows[i][j]
		}
	}

	propagate := func() {
		for i := 0; i < 8; i++ {
			carry := acc[i] >> 32
			acc[i] &= 0xFFFFFFFF
			acc[i+1] += carry
		}
	}
	propagate()

	applyOverflow := func() bool {
		overflow := acc[8]
		if overflow == 0 {
			return false
		}
		acc[0] += overflow
		acc[2] -= overflow
		acc[3] += overflow
		acc[7] += overflow
		acc[8] = 0
		propagate()
		return true
	}
	if applyOverflow() {
		applyOverflow()
	}

	for i := 0; i < 8; i++ {
		for acc[i] < 0 {
			acc[i] += 0x100000000
			acc[i+1]--
		}
	}

	var result BigInt256
	result.Limbs[0] = uint64(acc[0]) | uint64(acc[1])<<32
	result.Limbs[1] = uint64(acc[2]) | uint64(acc[3])<<32
	result.Limbs[2] = uint64(acc[4]) | uint64(acc[5])<<32
	result.Limbs[3] = uint64(acc[6]) | uint64(acc[7])<<32

	for Compare(result, P) >= 0 {
		result, _ = Sub(result, P)
	}
	return result
}

func sm2MulP(a, b BigInt256) BigInt256 {
	return sm2ModReduceP(Mul(a, b))
}

func sm2SquareP(a BigInt256) BigInt256 {
	return sm2ModReduceP(Mul(a, a))
}
