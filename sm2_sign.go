package sm

import (
	"errors"
	"strings"
)

// ZA computes the SM2 user-identifier pre-hash ZA = SM3(ENTL || ID || a ||
// b || Gx || Gy || xA || yA). ENTL is the two-byte big-endian bit length of
// ID.
func ZA(id []byte, pub Affine) [32]byte {
	entlBits := uint16(len(id)) * 8

	ctx := NewSM3()
	ctx.Update([]byte{byte(entlBits >> 8), byte(entlBits)})
	ctx.Update(id)

	ab := A.ToBEBytes()
	bb := B.ToBEBytes()
	gxb := Gx.ToBEBytes()
	gyb := Gy.ToBEBytes()
	xab := pub.X.ToBEBytes()
	yab := pub.Y.ToBEBytes()

	ctx.Update(ab[:])
	ctx.Update(bb[:])
	ctx.Update(gxb[:])
	ctx.Update(gyb[:])
	ctx.Update(xab[:])
	ctx.Update(yab[:])

	return ctx.Finish()
}

// Sign produces an SM2 signature over message under the identity id and
// key pair (d, pubA), formatted as r(64 lowercase hex) + "h" +
// s(64 lowercase hex).
func Sign(d BigInt256, pubA Affine, id []byte, message []byte) (string, error) {
	za := ZA(id, pubA)

	ctx := NewSM3()
	ctx.Update(za[:])
	ctx.Update(message)
	eDigest := ctx.Finish()
	e := FromBEBytes(eDigest[:])

	dScalar := NewScalar(d)
	onePlusD := NewScalar(One()).Add(dScalar)
	onePlusDInv := onePlusD.Inverse()

	for {
		k, err := DrawPrivateScalar()
		if err != nil {
			return "", err
		}

		x1y1 := Multiply(GeneratorPoint(), k)
		x1 := x1y1.X.Value()

		r := NewScalar(e).Add(NewScalar(x1))
		if r.IsZero() {
			continue
		}
		rPlusK := r.Add(NewScalar(k))
		if rPlusK.IsZero() {
			continue
		}

		kScalar := NewScalar(k)
		s := kScalar.Sub(r.Mul(dScalar)).Mul(onePlusDInv)
		if s.IsZero() {
			continue
		}

		return r.Value().ToHexLower() + "h" + s.Value().ToHexLower(), nil
	}
}

func parseSignature(sig string) (Scalar, Scalar, error) {
	parts := strings.SplitN(sig, "h", 2)
	if len(parts) != 2 {
		return Scalar{}, Scalar{}, errors.New("sm: malformed signature")
	}
	rv := FromHex(parts[0])
	sv := FromHex(parts[1])
	if Compare(rv, N) >= 0 || Compare(sv, N) >= 0 {
		return Scalar{}, Scalar{}, errors.New("sm: signature components out of range")
	}
	return NewScalar(rv), NewScalar(sv), nil
}

// Verify checks an SM2 signature over message under identity id and public
// key pubA.
func Verify(pubA Affine, id []byte, message []byte, sig string) (bool, error) {
	r, s, err := parseSignature(sig)
	if err != nil {
		return false, err
	}
	if !r.InRange() || !s.InRange() {
		return false, errors.New("sm: signature components out of range")
	}

	za := ZA(id, pubA)
	ctx := NewSM3()
	ctx.Update(za[:])
	ctx.Update(message)
	eDigest := ctx.Finish()
	e := NewScalar(FromBEBytes(eDigest[:]))

	t := r.Add(s)
	if t.IsZero() {
		return false, errors.New("sm: t is zero")
	}

	sg := Multiply(GeneratorPoint(), s.Value())
	tq := Multiply(pubA, t.Value())
	q := Add(sg, tq)
	if q.Infinity {
		return false, errors.New("sm: Q is point at infinity")
	}

	rCheck := e.Add(NewScalar(q.X.Value()))
	return rCheck.Value().ToHex() == r.Value().ToHex(), nil
}
