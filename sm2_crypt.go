package sm

import "errors"

// kdf implements the SM2 KDF: SM3(Z || ct) for ct = 1, 2, ... concatenated
// and truncated to klen bytes.
func kdf(z []byte, klen int) []byte {
	out := make([]byte, 0, klen+32)
	var ct uint32 = 1
	for len(out) < klen {
		ctx := NewSM3()
		ctx.Update(z)
		var ctBytes [4]byte
		ctBytes[0] = byte(ct >> 24)
		ctBytes[1] = byte(ct >> 16)
		ctBytes[2] = byte(ct >> 8)
		ctBytes[3] = byte(ct)
		ctx.Update(ctBytes[:])
		digest := ctx.Finish()
		out = append(out, digest[:]...)
		ct++
	}
	return out[:klen]
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Encrypt implements the SM2 public-key encryption scheme, emitting
// ciphertext as hex in C1 || C3 || C2 order (the wire ordering used
// throughout this implementation, not the C1||C2||C3 order some other SM2
// implementations use).
func Encrypt(pub Affine, message []byte) (string, error) {
	if len(message) == 0 {
		return "", errors.New("sm: message is empty")
	}

	for {
		k, err := DrawPrivateScalar()
		if err != nil {
			return "", err
		}

		c1 := Multiply(GeneratorPoint(), k)
		p2 := Multiply(pub, k)
		if p2.Infinity {
			continue
		}

		x2 := p2.X.ToBEBytes()
		y2 := p2.Y.ToBEBytes()
		z := make([]byte, 0, 64)
		z = append(z, x2[:]...)
		z = append(z, y2[:]...)

		key := kdf(z, len(message))
		if allZero(key) {
			continue
		}

		c2 := make([]byte, len(message))
		for i := range message {
			c2[i] = message[i] ^ key[i]
		}

		hashCtx := NewSM3()
		hashCtx.Update(x2[:])
		hashCtx.Update(message)
		hashCtx.Update(y2[:])
		c3 := hashCtx.Finish()

		out := c1.ToHexEncoded() + BytesToHex(c3[:]) + BytesToHex(c2)
		return out, nil
	}
}

// Decrypt implements SM2 decryption of a C1 || C3 || C2 hex ciphertext.
func Decrypt(d BigInt256, ciphertextHex string) ([]byte, error) {
	if len(ciphertextHex) < 194 {
		return nil, errors.New("sm: ciphertext too short")
	}

	c1 := FromHexEncoded(ciphertextHex[:130])
	if !c1.IsOnCurve() || c1.Infinity {
		return nil, errors.New("sm: C1 is not on curve")
	}
	c3 := HexToBytes(ciphertextHex[130:194])
	c2 := HexToBytes(ciphertextHex[194:])

	p2 := Multiply(c1, d)
	if p2.Infinity {
		return nil, errors.New("sm: P2 is point at infinity")
	}

	x2 := p2.X.ToBEBytes()
	y2 := p2.Y.ToBEBytes()
	z := make([]byte, 0, 64)
	z = append(z, x2[:]...)
	z = append(z, y2[:]...)

	key := kdf(z, len(c2))
	message := make([]byte, len(c2))
	for i := range c2 {
		message[i] = c2[i] ^ key[i]
	}

	hashCtx := NewSM3()
	hashCtx.Update(x2[:])
	hashCtx.Update(message)
	hashCtx.Update(y2[:])
	expected := hashCtx.Finish()

	for i := 0; i < 32; i++ {
		if expected[i] != c3[i] {
			return nil, errors.New("sm: C3 integrity check failed")
		}
	}
	return message, nil
}
