// Package cipher implements the link-layer streaming XOR obfuscator described
// by the wire protocol: two independent rolling-key lanes, one per
// direction, derived from a single shared seed chosen by the server side.
//
// This is not a cryptographic primitive. It preserves interoperability with
// a specific byte-level recipe and must not be relied on for confidentiality.
package cipher

import (
	"github.com/awnumar/memguard"
)

// SeedLen is the number of seed bytes exchanged during the handshake.
const SeedLen = 4

// keyLen is the size of each rolling-key table.
const keyLen = 8

// Lane is one direction of a Cipher: either the encrypt or the decrypt side.
// Each lane owns its own rolling key table and 3-bit offset so that
// interleaved reads and writes never observe each other's state.
type Lane struct {
	key *memguard.LockedBuffer
	off byte
}

func newLane(k [keyLen]byte) *Lane {
	buf := memguard.NewBuffer(keyLen)
	copy(buf.Bytes(), k[:])
	return &Lane{key: buf}
}

// Destroy releases the guarded memory backing the lane's key table. Callers
// that keep a Cipher for the lifetime of a Connection do not need to call
// this directly; Cipher.Destroy tears down both lanes.
func (l *Lane) Destroy() {
	if l == nil || l.key == nil {
		return
	}
	l.key.Destroy()
}

// process runs one byte through the lane's rolling XOR stream. decrypt
// says whether b is ciphertext (the recovered plaintext is returned) or
// plaintext (the ciphertext is returned). Either way the key slot stores
// the plaintext byte: on the decrypt lane that is the recovered plaintext,
// not the ciphertext, or the two sides desynchronize after the first byte
// (spec.md §3, §9 "Cipher symmetry subtlety").
func (l *Lane) process(b byte, decrypt bool) byte {
	key := l.key.Bytes()
	var plain, out byte
	if decrypt {
		plain = b ^ key[l.off]
		out = plain
	} else {
		plain = b
		out = b ^ key[l.off]
	}
	key[l.off] = plain
	l.off ^= plain & 7
	return out
}

// Cipher is a full-duplex XOR stream cipher: independent encrypt and decrypt
// lanes sharing no state beyond what key derivation gave them.
type Cipher struct {
	encrypt *Lane
	decrypt *Lane
}

// Noop returns a Cipher whose encrypt/decrypt are both the identity
// transform, used by a Connection before the handshake installs real keys.
func Noop() *Cipher {
	return &Cipher{}
}

// DeriveKeys implements the key schedule from spec.md §3:
//
//	seed = XOR of all seed bytes
//	k_a[i] = seed XOR (i<<3)      for i in 0..8
//	k_b[i] = k_a[i] XOR 0x57
//
// The party that generated the seed (isServer) uses k_a to encrypt and k_b
// to decrypt; the peer swaps them.
func DeriveKeys(seed [SeedLen]byte, isServer bool) *Cipher {
	var xored byte
	for _, b := range seed {
		xored ^= b
	}

	var ka, kb [keyLen]byte
	for i := 0; i < keyLen; i++ {
		ka[i] = xored ^ byte(i<<3)
		kb[i] = ka[i] ^ 0x57
	}

	aLane := newLane(ka)
	bLane := newLane(kb)

	if isServer {
		return &Cipher{encrypt: aLane, decrypt: bLane}
	}
	return &Cipher{encrypt: bLane, decrypt: aLane}
}

// Encrypt transforms buf in place using the encrypt lane. Total: it never
// fails and always consumes exactly len(buf) bytes of rolling state.
func (c *Cipher) Encrypt(buf []byte) {
	if c.encrypt == nil {
		return
	}
	for i, b := range buf {
		buf[i] = c.encrypt.process(b, false)
	}
}

// Decrypt transforms buf in place using the decrypt lane.
func (c *Cipher) Decrypt(buf []byte) {
	if c.decrypt == nil {
		return
	}
	for i, b := range buf {
		buf[i] = c.decrypt.process(b, true)
	}
}

// Destroy wipes both lanes' guarded key material. Safe to call on a Noop
// cipher or more than once.
func (c *Cipher) Destroy() {
	if c == nil {
		return
	}
	c.encrypt.Destroy()
	c.decrypt.Destroy()
}
