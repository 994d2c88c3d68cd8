package sm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorOnCurve(t *testing.T) {
	assert.True(t, GeneratorPoint().IsOnCurve())
}

func TestInfinityIsOnCurve(t *testing.T) {
	assert.True(t, InfinityPoint().IsOnCurve())
}

func TestMultiplyByZeroIsInfinity(t *testing.T) {
	p := Multiply(GeneratorPoint(), Zero())
	assert.True(t, p.Infinity)
}

func TestAddClosureAndNegation(t *testing.T) {
	g := GeneratorPoint()
	two := Multiply(g, FromHex("02"))
	assert.True(t, two.IsOnCurve())

	neg := NewAffine(g.X, g.Y.Negate())
	sum := Add(g, neg)
	assert.True(t, sum.Infinity)
}

func TestScalarMultiplyDistributesOverAddition(t *testing.T) {
	g := GeneratorPoint()
	a := FromHex("07")
	b := FromHex("0B")
	sum := ModAdd(a, b, N)

	lhs := Multiply(g, sum)
	rhs := Add(Multiply(g, a), Multiply(g, b))
	assert.True(t, lhs.X.Equal(rhs.X))
	assert.True(t, lhs.Y.Equal(rhs.Y))
}

func TestHexEncodeDecodeRoundTrip(t *testing.T) {
	g := GeneratorPoint()
	encoded := g.ToHexEncoded()
	decoded := FromHexEncoded(encoded)
	assert.True(t, decoded.X.Equal(g.X))
	assert.True(t, decoded.Y.Equal(g.Y))
}

func TestInfinityHexEncoding(t *testing.T) {
	assert.Equal(t, "00", InfinityPoint().ToHexEncoded())
}
