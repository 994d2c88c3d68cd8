package sm

// KeyPair is an SM2 private/public key pair: d is the private scalar, Q is
// the public point d*G.
type KeyPair struct {
	D BigInt256
	Q Affine
}

// GenerateKeyPair draws a fresh private key and derives the matching public
// point.
func GenerateKeyPair() (*KeyPair, error) {
	d, err := DrawPrivateScalar()
	if err != nil {
		return nil, err
	}
	q := Multiply(GeneratorPoint(), d)
	return &KeyPair{D: d, Q: q}, nil
}

// PublicFromPrivate derives the public point for an existing private scalar.
func PublicFromPrivate(d BigInt256) Affine {
	return Multiply(GeneratorPoint(), d)
}

// PrivateHex renders the private scalar as 64 lowercase hex characters.
func (kp *KeyPair) PrivateHex() string {
	return kp.D.ToHexLower()
}

// PublicHex renders the public point in uncompressed "04"||X||Y form.
func (kp *KeyPair) PublicHex() string {
	return kp.Q.ToHexEncoded()
}
