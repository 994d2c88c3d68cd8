package sm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSM2EncryptDecryptRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	message := []byte("encryption standard")
	ciphertext, err := Encrypt(kp.Q, message)
	require.NoError(t, err)

	plaintext, err := Decrypt(kp.D, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, message, plaintext)
}

func TestSM2DecryptRejectsShortCiphertext(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = Decrypt(kp.D, "00")
	assert.Error(t, err)
}

func TestSM2DecryptRejectsTamperedCiphertext(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	ciphertext, err := Encrypt(kp.Q, []byte("encryption standard"))
	require.NoError(t, err)

	tampered := []byte(ciphertext)
	lastIdx := len(tampered) - 1
	if tampered[lastIdx] == '0' {
		tampered[lastIdx] = '1'
	} else {
		tampered[lastIdx] = '0'
	}

	_, err = Decrypt(kp.D, string(tampered))
	assert.Error(t, err)
}

func TestKDFLengthMatchesRequest(t *testing.T) {
	z := []byte("seed material")
	key := kdf(z, 40)
	assert.Len(t, key, 40)
}
