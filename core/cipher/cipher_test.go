package cipher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKeysSwapRoles(t *testing.T) {
	seed := [SeedLen]byte{0x01, 0x02, 0x03, 0x04}

	server := DeriveKeys(seed, true)
	client := DeriveKeys(seed, false)
	defer server.Destroy()
	defer client.Destroy()

	plain := []byte("hello, tankers")
	buf := append([]byte(nil), plain...)

	server.Encrypt(buf)
	require.NotEqual(t, plain, buf)

	client.Decrypt(buf)
	require.Equal(t, plain, buf)
}

func TestRoundTripArbitraryChunking(t *testing.T) {
	seed := [SeedLen]byte{0xDE, 0xAD, 0xBE, 0xEF}

	server := DeriveKeys(seed, true)
	client := DeriveKeys(seed, false)
	defer server.Destroy()
	defer client.Destroy()

	plain := bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 37)
	chunkSizes := []int{1, 3, 7, 11, 50, 1}

	var ciphered []byte
	off := 0
	for _, n := range chunkSizes {
		if off+n > len(plain) {
			n = len(plain) - off
		}
		chunk := append([]byte(nil), plain[off:off+n]...)
		server.Encrypt(chunk)
		ciphered = append(ciphered, chunk...)
		off += n
	}
	ciphered = append(ciphered, plain[off:]...)
	server.Encrypt(ciphered[off:])

	client.Decrypt(ciphered)
	require.Equal(t, plain, ciphered)
}

func TestNoopCipherIsIdentity(t *testing.T) {
	c := Noop()
	buf := []byte{1, 2, 3}
	want := append([]byte(nil), buf...)
	c.Encrypt(buf)
	c.Decrypt(buf)
	require.Equal(t, want, buf)
}

func TestIndependentDirectionsDoNotCorruptEachOther(t *testing.T) {
	seed := [SeedLen]byte{0x11, 0x22, 0x33, 0x44}
	server := DeriveKeys(seed, true)
	client := DeriveKeys(seed, false)
	defer server.Destroy()
	defer client.Destroy()

	c2s := []byte("client says hi")
	s2c := []byte("server says hi")

	c2sCipher := append([]byte(nil), c2s...)
	client.Encrypt(c2sCipher) // client encrypts outbound
	s2cCipher := append([]byte(nil), s2c...)
	server.Encrypt(s2cCipher) // server encrypts outbound

	server.Decrypt(c2sCipher)
	client.Decrypt(s2cCipher)

	require.Equal(t, c2s, c2sCipher)
	require.Equal(t, s2c, s2cCipher)
}
