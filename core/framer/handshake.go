package framer

import (
	"crypto/rand"
	"fmt"

	"github.com/protanki-go/protocol/core/cipher"
	"github.com/protanki-go/protocol/core/wire"
	"github.com/protanki-go/protocol/core/wire/messages"
)

// ServerHandshake implements spec.md §4.4.3's server role: generate a
// fresh seed, send it in the clear as InitializeEncryption, then install
// the cipher for every payload after. The teacher's own core/crypto/rand
// wrapper was not part of the retrieved pack, so this uses crypto/rand
// directly — the standard, non-deterministic source it itself wraps.
func ServerHandshake(c *Connection) error {
	var seed [cipher.SeedLen]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return fmt.Errorf("framer: handshake seed: %w", err)
	}

	if err := c.Send(&messages.InitializeEncryption{Seed: append([]byte(nil), seed[:]...)}); err != nil {
		return err
	}
	c.InstallCipher(cipher.DeriveKeys(seed, true))
	return nil
}

// ClientHandshake implements the client role: the first inbound message
// must be InitializeEncryption; its seed installs the cipher with roles
// swapped, after which the caller is expected to send
// EncryptionInitialized immediately (spec.md §6.2).
func ClientHandshake(first wire.Message) (*cipher.Cipher, error) {
	init, ok := first.(*messages.InitializeEncryption)
	if !ok {
		return nil, wire.ErrUnexpectedPacket
	}
	if len(init.Seed) != cipher.SeedLen {
		return nil, fmt.Errorf("framer: handshake seed length %d, want %d", len(init.Seed), cipher.SeedLen)
	}
	var seed [cipher.SeedLen]byte
	copy(seed[:], init.Seed)
	return cipher.DeriveKeys(seed, false), nil
}
