package sm

import (
	"crypto/rand"
	"errors"
)

// drawScalar draws a uniformly random value in [1, n) from the OS CSPRNG,
// redrawing on an out-of-range sample. Retrying is not an error path: a
// draw landing outside [1, n) is expected to happen with negligible but
// nonzero probability, exactly as in the reference key/nonce generation.
func drawScalar(n BigInt256) (BigInt256, error) {
	var buf [32]byte
	for attempt := 0; attempt < 256; attempt++ {
		if _, err := rand.Read(buf[:]); err != nil {
			return BigInt256{}, err
		}
		candidate := FromBEBytes(buf[:])
		if candidate.IsZero() || Compare(candidate, n) >= 0 {
			continue
		}
		return candidate, nil
	}
	return BigInt256{}, errors.New("sm: failed to draw a valid random scalar")
}

// DrawPrivateScalar draws a private key d in [1, n-1], suitable both for
// SM2 key generation and for the per-signature/per-encryption nonce k.
func DrawPrivateScalar() (BigInt256, error) {
	return drawScalar(N)
}
