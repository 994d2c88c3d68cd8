package sm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSession(selfID, peerID []byte, selfD, ephemeral BigInt256, selfPub, peerPub Affine) *Session {
	return &Session{
		state:        StateInit,
		selfID:       selfID,
		peerID:       peerID,
		selfD:        selfD,
		selfPub:      selfPub,
		peerPub:      peerPub,
		ephemeral:    ephemeral,
		ephemeralPub: Multiply(GeneratorPoint(), ephemeral),
	}
}

func TestSM2KeyExchangeKnownVector(t *testing.T) {
	dA := FromHex("6FCBA2EF9AE0AB902BC3BDE3FF915D44BA4CC78F88E2F8E7F8996D3B8CCEEDEE")
	rA := FromHex("83A2C9C8B96E5AF70BD480B472409A9A327257F1EBB73F5B073354B248668563")
	dB := FromHex("5E35D7D3F3C54DBAC72E61819E730B019A84208CA3A35E4C2E353DFCCB2A3B53")
	rB := FromHex("33FE21940342161C55619C4A0C060293D543C80AF19748CE176D83477DE71C80")
	idA := []byte("ALICE123@YAHOO.COM")
	idB := []byte("BILL456@YAHOO.COM")
	const klen = 16

	pubA := PublicFromPrivate(dA)
	pubB := PublicFromPrivate(dB)

	sessionA := fixedSession(idA, idB, dA, rA, pubA, pubB)
	sessionB := fixedSession(idB, idA, dB, rB, pubB, pubA)

	sb, err := sessionB.ComputeSB(sessionA.EphemeralPublic(), klen)
	require.NoError(t, err)

	kaHex, sa, err := sessionA.ComputeSA(sessionB.EphemeralPublic(), sb, klen)
	require.NoError(t, err)
	assert.Len(t, kaHex, klen*2)

	kbHex, err := sessionB.CheckSA(sa)
	require.NoError(t, err)

	assert.Equal(t, kaHex, kbHex)
}

func TestSM2KeyExchangeRejectsBadPeerPoint(t *testing.T) {
	dA := FromHex("01")
	dB := FromHex("02")
	pubA := PublicFromPrivate(dA)
	pubB := PublicFromPrivate(dB)

	sessionB := fixedSession([]byte("B"), []byte("A"), dB, FromHex("03"), pubB, pubA)

	bad := Affine{X: FpFromHex("01"), Y: FpFromHex("01")}
	_, err := sessionB.ComputeSB(bad, 16)
	assert.Error(t, err)
	assert.Equal(t, StateFailed, sessionB.State())
}
