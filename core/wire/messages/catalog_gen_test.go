package messages

import (
	"bytes"
	"testing"

	"github.com/protanki-go/protocol/core/codec"
	"github.com/protanki-go/protocol/core/wire"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, m wire.Message, decode wire.Decoder) wire.Message {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, m.EncodeFields(&buf))
	got, err := decode(codec.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return got
}

func TestHandshakePairRoundTrip(t *testing.T) {
	seed := &InitializeEncryption{Seed: []byte{0x01, 0x02, 0x03, 0x04}}
	got := roundTrip(t, seed, decodeInitializeEncryption).(*InitializeEncryption)
	require.Equal(t, seed.Seed, got.Seed)
	require.Equal(t, wire.DirectionS2C, seed.Direction())

	ack := &EncryptionInitialized{LanguageCode: "en"}
	gotAck := roundTrip(t, ack, decodeEncryptionInitialized).(*EncryptionInitialized)
	require.Equal(t, "en", gotAck.LanguageCode)
	require.Equal(t, wire.DirectionC2S, ack.Direction())
}

func TestEncryptionInitializedWireBytes(t *testing.T) {
	// spec.md §8 scenario 1: literal payload bool=false, u32=2, "en".
	ack := &EncryptionInitialized{LanguageCode: "en"}
	var buf bytes.Buffer
	require.NoError(t, ack.EncodeFields(&buf))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x02, 'e', 'n'}, buf.Bytes())
}

func TestDensestCodecNestingRoundTrip(t *testing.T) {
	blobA := []byte{1, 2, 3}
	resp := &ResourcesFetchResponse{Resources: []*[]uint8{&blobA, nil}}
	got := roundTrip(t, resp, decodeResourcesFetchResponse).(*ResourcesFetchResponse)
	require.Len(t, got.Resources, 2)
	require.Equal(t, blobA, *got.Resources[0])
	require.Nil(t, got.Resources[1])
}

func TestEntityMoveUpdateRoundTrip(t *testing.T) {
	withVel := &EntityMoveUpdate{
		EntityID: 42,
		Position: codec.Vec3{X: 1, Y: 2, Z: 3},
		Velocity: &codec.Vec3{X: -1, Y: 0, Z: 0.5},
	}
	got := roundTrip(t, withVel, decodeEntityMoveUpdate).(*EntityMoveUpdate)
	require.Equal(t, withVel.EntityID, got.EntityID)
	require.Equal(t, withVel.Position, got.Position)
	require.Equal(t, *withVel.Velocity, *got.Velocity)

	noVel := &EntityMoveUpdate{EntityID: 7, Position: codec.Vec3{}}
	got2 := roundTrip(t, noVel, decodeEntityMoveUpdate).(*EntityMoveUpdate)
	require.Nil(t, got2.Velocity)
}

func TestRegisterAllSplitsByRole(t *testing.T) {
	server := wire.NewCatalog()
	RegisterAll(server, wire.RoleServer)
	require.True(t, server.Has(2)) // EncryptionInitialized, C2S
	require.True(t, server.Has(3)) // Ping, X2X
	require.False(t, server.Has(1)) // InitializeEncryption, S2C only

	client := wire.NewCatalog()
	RegisterAll(client, wire.RoleClient)
	require.True(t, client.Has(1))
	require.False(t, client.Has(2))
}

func TestRegisterDuplicateIDPanics(t *testing.T) {
	c := wire.NewCatalog()
	c.Register(100, wire.DirectionX2X, decodePing)
	require.Panics(t, func() {
		c.Register(100, wire.DirectionX2X, decodePing)
	})
}
