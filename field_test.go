package sm

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomFp(t *testing.T) Fp {
	t.Helper()
	var buf [32]byte
	_, err := rand.Read(buf[:])
	require.NoError(t, err)
	v := FromBEBytes(buf[:])
	reduced := modReduce512([8]uint64{v.Limbs[0], v.Limbs[1], v.Limbs[2], v.Limbs[3], 0, 0, 0, 0}, P)
	return NewFp(reduced)
}

func TestFpClosure(t *testing.T) {
	a := randomFp(t)
	b := randomFp(t)

	for _, v := range []Fp{a.Add(b), a.Sub(b), a.Mul(b), a.Square(), a.Negate(), a.Double(), a.Triple()} {
		assert.Equal(t, -1, Compare(v.Value(), P))
	}
}

func TestFpInverse(t *testing.T) {
	a := FpFromHex("02")
	inv := a.Invert()
	assert.True(t, a.Mul(inv).Equal(FpOne()))
}

func TestFpInvertZeroIsZero(t *testing.T) {
	assert.True(t, FpZero().Invert().IsZero())
}

func TestSolinasEquivalence(t *testing.T) {
	for i := 0; i < 16; i++ {
		a := randomFp(t)
		b := randomFp(t)

		fast := a.Mul(b)
		generic := NewFp(ModMul(a.Value(), b.Value(), P))
		assert.True(t, fast.Equal(generic))
	}
}

func TestFpNegate(t *testing.T) {
	a := FpFromHex("05")
	neg := a.Negate()
	assert.True(t, a.Add(neg).IsZero())
	assert.True(t, FpZero().Negate().IsZero())
}
