// Package diag is an example-only encrypted diagnostic log: per-session
// counters (frames/bytes in and out, close reason, open/close time)
// persisted to a bbolt-backed file so an operator can inspect connection
// history after the fact. This is explicitly not
// the relational game-account persistence spec.md's Non-goals exclude —
// it never stores protocol state, only after-the-fact telemetry.
//
// The encryption recipe (argon2 key derivation, nacl/secretbox sealing
// with a fresh random nonce per record) is lifted directly from the
// teacher's disk.go StateWriter; the storage layer is swapped from a
// single flat statefile to a bbolt bucket so multiple session records
// accumulate instead of overwriting one another, and the payload codec
// is fxamacker/cbor/v2 in place of disk.go's ugorji/go/codec, mirroring
// client/cborplugin's choice elsewhere in the teacher. (core/wire/schema
// is TOML, not CBOR.)
package diag

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
	logging "gopkg.in/op/go-logging.v1"
)

const (
	keySize   = 32
	nonceSize = 24
)

var bucketName = []byte("diagnostics")

// Record is one closed connection's summary.
type Record struct {
	SessionID   string
	OpenedAt    time.Time
	ClosedAt    time.Time
	CloseReason string
	FramesIn    uint64
	FramesOut   uint64
	BytesIn     uint64
	BytesOut    uint64
}

// Store is an encrypted, append-only diagnostic log backed by bbolt.
type Store struct {
	db  *bolt.DB
	key [keySize]byte
	log *logging.Logger
}

// Open opens (creating if absent) the bbolt file at path, deriving the
// at-rest encryption key from passphrase the same way disk.go derives
// its statefile key. log may be nil.
func Open(path string, passphrase []byte, log *logging.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("diag: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, log: log}
	secret := argon2.Key(passphrase, bucketName, 3, 32*1024, 4, keySize)
	copy(s.key[:], secret)
	return s, nil
}

// Close releases the underlying bbolt file.
func (s *Store) Close() error { return s.db.Close() }

// Put encrypts and appends r.
func (s *Store) Put(r *Record) error {
	plain, err := cbor.Marshal(r)
	if err != nil {
		return fmt.Errorf("diag: encode record: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("diag: nonce: %w", err)
	}
	sealed := secretbox.Seal(append([]byte(nil), nonce[:]...), plain, &nonce, &s.key)

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, id)
		if s.log != nil {
			s.log.Debugf("diag: recording session %s (seq %d)", r.SessionID, id)
		}
		return b.Put(key, sealed)
	})
}

// List decrypts and returns every stored record, oldest first.
func (s *Store) List() ([]*Record, error) {
	var out []*Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.ForEach(func(_, v []byte) error {
			if len(v) < nonceSize {
				return fmt.Errorf("diag: corrupt record: %d bytes", len(v))
			}
			var nonce [nonceSize]byte
			copy(nonce[:], v[:nonceSize])
			plain, ok := secretbox.Open(nil, v[nonceSize:], &nonce, &s.key)
			if !ok {
				return fmt.Errorf("diag: decrypt failed")
			}
			var r Record
			if err := cbor.Unmarshal(plain, &r); err != nil {
				return err
			}
			out = append(out, &r)
			return nil
		})
	})
	return out, err
}
