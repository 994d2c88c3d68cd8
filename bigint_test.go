package sm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigIntHexRoundTrip(t *testing.T) {
	v := FromHex("1A2B3C")
	require.Equal(t, "00000000000000000000000000000000000000000000000000000000001A2B3C", v.ToHex())
}

func TestBigIntAddSub(t *testing.T) {
	a := FromHex("01")
	b := FromHex("02")
	sum, carry := AddCarry(a, b)
	assert.Zero(t, carry)
	assert.True(t, sum.IsOne() == false)
	assert.Equal(t, uint64(3), sum.Limbs[0])

	diff, borrow := Sub(b, a)
	assert.Zero(t, borrow)
	assert.True(t, diff.IsOne())
}

func TestBigIntSubBorrow(t *testing.T) {
	zero := Zero()
	one := One()
	_, borrow := Sub(zero, one)
	assert.Equal(t, uint64(1), borrow)
}

func TestBigIntCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(Zero(), One()))
	assert.Equal(t, 0, Compare(One(), One()))
	assert.Equal(t, 1, Compare(One(), Zero()))
}

func TestBigIntModInverse(t *testing.T) {
	prime := FromHex("65") // 101, prime
	a := FromHex("1A")     // 26
	inv := ModInverse(a, prime)
	product := ModMul(a, inv, prime)
	assert.True(t, product.IsOne())
}

func TestBigIntGetBitAndBitLength(t *testing.T) {
	v := FromHex("08") // 0b1000
	assert.True(t, v.GetBit(3))
	assert.False(t, v.GetBit(0))
	assert.Equal(t, 4, v.BitLength())
	assert.Equal(t, 0, Zero().BitLength())
}

func TestBigIntDivByZeroModulusReturnsZero(t *testing.T) {
	r := modReduce512([8]uint64{5, 0, 0, 0, 0, 0, 0, 0}, Zero())
	assert.True(t, r.IsZero())
}

func TestBytesHexRoundTrip(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	hex := BytesToHex(data)
	assert.Equal(t, "deadbeef", hex)
	assert.Equal(t, data, HexToBytes(hex))
}
