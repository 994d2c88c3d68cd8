package sm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyPairIsOnCurveAndInRange(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	assert.True(t, kp.Q.IsOnCurve())
	assert.False(t, kp.D.IsZero())
	assert.Equal(t, -1, Compare(kp.D, N))
}

func TestPublicFromPrivateMatchesGenerate(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	derived := PublicFromPrivate(kp.D)
	assert.True(t, derived.X.Equal(kp.Q.X))
	assert.True(t, derived.Y.Equal(kp.Q.Y))
}

func TestKeyHexEncodings(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	assert.Len(t, kp.PrivateHex(), 64)
	assert.Len(t, kp.PublicHex(), 130)
	assert.Equal(t, byte('0'), kp.PublicHex()[0])
}
