package sm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSM4CBCKnownVector(t *testing.T) {
	key := []byte("this is the key")
	iv := []byte("this is the iv")
	plaintext := []byte("国密SM4对称加密算法")

	ctx := NewSM4(key, iv)
	ciphertext := ctx.EncryptCBC(plaintext)
	assert.Equal(t, "09908004c24cece806ee6dc2d6a3d154907048fb96d0201a8c47f4f1e03995bc", ciphertext)
}

func TestSM4RoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte("fedcba9876543210")
	plaintext := []byte("an arbitrary non-empty message to round-trip through SM4-CBC")

	encCtx := NewSM4(key, iv)
	ciphertext := encCtx.EncryptCBC(plaintext)

	decCtx := NewSM4(key, iv)
	decrypted, err := decCtx.DecryptCBC(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestSM4RejectsBadPadding(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte("fedcba9876543210")
	ctx := NewSM4(key, iv)

	bad := make([]byte, 16)
	_, err := ctx.DecryptCBC(BytesToHex(bad))
	assert.Error(t, err)
}

func TestSM4PrepareKeyShortKeyIsHashed(t *testing.T) {
	a := sm4PrepareKey([]byte("short"))
	b := sm4PrepareKey([]byte("short"))
	assert.Equal(t, a, b)
	h := NewSM3()
	h.Update([]byte("short"))
	h.Finish()
	assert.Equal(t, h.HexDigest()[:16], string(a[:]))

	var exact [16]byte
	copy(exact[:], []byte("0123456789abcdef"))
	assert.Equal(t, exact, sm4PrepareKey(exact[:]))
}
