package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// MinKeyBytes is the minimum accepted key length (128 bits).
	MinKeyBytes = 16

	// DefaultKeyBytes is the length of freshly generated keys (256 bits).
	DefaultKeyBytes = 32
)

// ErrKeyTooShort is returned when a caller supplies a key below MinKeyBytes.
var ErrKeyTooShort = errors.New("key must be at least 128 bits")

// SecretKey is an owned secret-key buffer with explicit erasure.
//
// The scheme that created it is the sole owner: Zero must be called on every
// release path, including error paths. After Zero the key is unusable.
type SecretKey struct {
	buf []byte
}

// GenerateKey creates a fresh random 256-bit key.
func GenerateKey() (*SecretKey, error) {
	buf := make([]byte, DefaultKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &SecretKey{buf: buf}, nil
}

// NewSecretKey wraps a caller-supplied key. The bytes are copied, so the
// caller's slice can be reused or erased independently.
func NewSecretKey(key []byte) (*SecretKey, error) {
	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf("%w: got %d bytes", ErrKeyTooShort, len(key))
	}
	buf := make([]byte, len(key))
	copy(buf, key)
	return &SecretKey{buf: buf}, nil
}

// Bytes returns a copy of the raw key material.
func (k *SecretKey) Bytes() []byte {
	out := make([]byte, len(k.buf))
	copy(out, k.buf)
	return out
}

// Len returns the key length in bytes.
func (k *SecretKey) Len() int { return len(k.buf) }

// Subkey derives a purpose-bound 256-bit subkey via HKDF-SHA256.
// The label separates key domains (search tokens, doc-ID masking, pair IDs).
func (k *SecretKey) Subkey(label string) ([]byte, error) {
	if len(k.buf) == 0 {
		return nil, errors.New("subkey from erased key")
	}
	r := hkdf.New(sha256.New, k.buf, nil, []byte(label))
	sub := make([]byte, 32)
	if _, err := io.ReadFull(r, sub); err != nil {
		return nil, fmt.Errorf("derive subkey %q: %w", label, err)
	}
	return sub, nil
}

// Equal reports whether two keys hold the same material, in constant time.
func (k *SecretKey) Equal(other *SecretKey) bool {
	if other == nil || len(k.buf) != len(other.buf) {
		return false
	}
	return subtle.ConstantTimeCompare(k.buf, other.buf) == 1
}

// Zero erases the key material. Safe to call more than once.
func (k *SecretKey) Zero() {
	for i := range k.buf {
		k.buf[i] = 0
	}
	k.buf = nil
}

// Zeroize erases an arbitrary byte slice in place.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
