package sm

import "errors"

// xbar implements the x̄ truncation function used throughout SM2 key
// exchange: the top bit is forced on and only the low 127 bits of x
// survive.
func xbar(x BigInt256) BigInt256 {
	var r BigInt256
	r.Limbs[0] = x.Limbs[0]
	r.Limbs[1] = x.Limbs[1] | (uint64(1) << 63)
	return r
}

// SessionState tracks the lifecycle of one side of a two-pass SM2 key
// exchange.
type SessionState int

const (
	StateInit SessionState = iota
	StateBPending
	StateAwaitSA
	StateVerify
	StateDone
	StateFailed
)

// Session holds one party's state across a two-pass SM2 key exchange. A
// fresh Session draws its own ephemeral key pair immediately.
type Session struct {
	state SessionState

	selfID, peerID   []byte
	selfD            BigInt256
	selfPub, peerPub Affine

	ephemeral    BigInt256
	ephemeralPub Affine
	peerEphPub   Affine

	v       Affine
	za, zb  [32]byte
	key     []byte
	confirm string
	message string
}

// NewSession creates a session for one party and draws its ephemeral key
// pair R = r*G.
func NewSession(selfID, peerID []byte, selfD BigInt256, selfPub, peerPub Affine) (*Session, error) {
	r, err := DrawPrivateScalar()
	if err != nil {
		return nil, err
	}
	return &Session{
		state:        StateInit,
		selfID:       selfID,
		peerID:       peerID,
		selfD:        selfD,
		selfPub:      selfPub,
		peerPub:      peerPub,
		ephemeral:    r,
		ephemeralPub: Multiply(GeneratorPoint(), r),
	}, nil
}

// EphemeralPublic returns this party's ephemeral public key R, to be sent
// to the peer.
func (s *Session) EphemeralPublic() Affine { return s.ephemeralPub }

// State reports the session's current lifecycle state.
func (s *Session) State() SessionState { return s.state }

// Message returns the diagnostic message recorded on failure.
func (s *Session) Message() string { return s.message }

func innerExchangeHash(vx BigInt256, za, zb [32]byte, ra, rb Affine) [32]byte {
	ctx := NewSM3()
	vxb := vx.ToBEBytes()
	rax := ra.X.ToBEBytes()
	ray := ra.Y.ToBEBytes()
	rbx := rb.X.ToBEBytes()
	rby := rb.Y.ToBEBytes()
	ctx.Update(vxb[:])
	ctx.Update(za[:])
	ctx.Update(zb[:])
	ctx.Update(rax[:])
	ctx.Update(ray[:])
	ctx.Update(rbx[:])
	ctx.Update(rby[:])
	return ctx.Finish()
}

func confirmHash(tag byte, vy BigInt256, inner [32]byte) [32]byte {
	ctx := NewSM3()
	ctx.Update([]byte{tag})
	vyb := vy.ToBEBytes()
	ctx.Update(vyb[:])
	ctx.Update(inner[:])
	return ctx.Finish()
}

// ComputeSB runs the responder ("B") side of the exchange: validates the
// initiator's ephemeral public key, derives the shared point V, the shared
// key and the confirmation tag S_B.
func (s *Session) ComputeSB(peerEphPub Affine, klen int) (string, error) {
	if s.state != StateInit {
		return "", errors.New("sm: session not in initial state")
	}
	if peerEphPub.Infinity || !peerEphPub.IsOnCurve() {
		s.state = StateFailed
		s.message = "RA point is not on curve"
		return "", errors.New(s.message)
	}
	s.peerEphPub = peerEphPub

	xbar2 := xbar(s.ephemeralPub.X.Value())
	tB := NewScalar(s.selfD).Add(NewScalar(xbar2).Mul(NewScalar(s.ephemeral)))

	xbar1 := xbar(peerEphPub.X.Value())
	xbar1RA := Multiply(peerEphPub, xbar1)
	sumPoint := Add(s.peerPub, xbar1RA)
	v := Multiply(sumPoint, tB.Value())
	if v.Infinity {
		s.state = StateFailed
		s.message = "V is point at infinity"
		return "", errors.New(s.message)
	}
	s.v = v

	s.za = ZA(s.peerID, s.peerPub)
	s.zb = ZA(s.selfID, s.selfPub)

	vx := v.X.ToBEBytes()
	vy := v.Y.ToBEBytes()
	z := make([]byte, 0, 128)
	z = append(z, vx[:]...)
	z = append(z, vy[:]...)
	z = append(z, s.za[:]...)
	z = append(z, s.zb[:]...)
	s.key = kdf(z, klen)

	inner := innerExchangeHash(v.X.Value(), s.za, s.zb, peerEphPub, s.ephemeralPub)
	sb := confirmHash(0x02, v.Y.Value(), inner)
	s.confirm = BytesToHex(sb[:])

	s.state = StateBPending
	s.state = StateAwaitSA
	return s.confirm, nil
}

// CheckSA completes B's side: verifies the initiator's confirmation tag
// S_A against the stored shared point and pre-hashes.
func (s *Session) CheckSA(receivedSA string) (string, error) {
	if s.state != StateAwaitSA {
		return "", errors.New("sm: session not awaiting S_A")
	}
	s.state = StateVerify

	inner := innerExchangeHash(s.v.X.Value(), s.za, s.zb, s.peerEphPub, s.ephemeralPub)
	expected := confirmHash(0x03, s.v.Y.Value(), inner)
	if BytesToHex(expected[:]) != receivedSA {
		s.state = StateFailed
		s.message = "A's verification value does not match"
		return "", errors.New(s.message)
	}

	s.state = StateDone
	return BytesToHex(s.key), nil
}

// ComputeSA runs the initiator ("A") side of the exchange in one shot:
// derives the shared point U, verifies the responder's S_B, and returns the
// shared key and the confirmation tag S_A to send back.
func (s *Session) ComputeSA(peerEphPub Affine, receivedSB string, klen int) (key, sa string, err error) {
	if s.state != StateInit {
		return "", "", errors.New("sm: session not in initial state")
	}
	if peerEphPub.Infinity || !peerEphPub.IsOnCurve() {
		s.state = StateFailed
		s.message = "RB point is not on curve"
		return "", "", errors.New(s.message)
	}
	s.peerEphPub = peerEphPub

	xbar1 := xbar(s.ephemeralPub.X.Value())
	tA := NewScalar(s.selfD).Add(NewScalar(xbar1).Mul(NewScalar(s.ephemeral)))

	xbar2 := xbar(peerEphPub.X.Value())
	xbar2RB := Multiply(peerEphPub, xbar2)
	sumPoint := Add(s.peerPub, xbar2RB)
	u := Multiply(sumPoint, tA.Value())
	if u.Infinity {
		s.state = StateFailed
		s.message = "U is point at infinity"
		return "", "", errors.New(s.message)
	}
	s.v = u

	s.za = ZA(s.selfID, s.selfPub)
	s.zb = ZA(s.peerID, s.peerPub)

	inner := innerExchangeHash(u.X.Value(), s.za, s.zb, s.ephemeralPub, peerEphPub)

	expectedSB := confirmHash(0x02, u.Y.Value(), inner)
	if BytesToHex(expectedSB[:]) != receivedSB {
		s.state = StateFailed
		s.message = "B's verification value does not match"
		return "", "", errors.New(s.message)
	}

	ux := u.X.ToBEBytes()
	uy := u.Y.ToBEBytes()
	z := make([]byte, 0, 128)
	z = append(z, ux[:]...)
	z = append(z, uy[:]...)
	z = append(z, s.za[:]...)
	z = append(z, s.zb[:]...)
	s.key = kdf(z, klen)

	saDigest := confirmHash(0x03, u.Y.Value(), inner)
	s.confirm = BytesToHex(saDigest[:])
	s.state = StateDone

	return BytesToHex(s.key), s.confirm, nil
}
