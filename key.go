// Package symkey models a symmetric encryption key as an immutable value:
// derived key material plus the salt and initialization vector it was
// produced with, serializable to and from a compact binary blob.
//
// The package derives keys from passwords, it does not encrypt anything
// itself; callers feed the key material to their cipher of choice.
package symkey

import (
	"crypto/subtle"
	"hash/fnv"

	"github.com/awnumar/memguard"
)

// EncryptionKey is derived symmetric key material together with the scheme,
// salt and initialization vector that produced it, and an optional
// human-readable context label (an account name, for instance).
//
// An EncryptionKey is immutable after construction; WithContext returns a
// relabeled copy rather than mutating in place. Values are safe to share
// across goroutines for reads.
type EncryptionKey struct {
	scheme  Scheme
	keyData []byte
	iv      []byte
	salt    []byte
	context string
}

// Scheme returns the scheme the key was derived under.
func (k EncryptionKey) Scheme() Scheme {
	return k.scheme
}

// KeyData returns a copy of the derived key material.
func (k EncryptionKey) KeyData() []byte {
	return copyBytes(k.keyData)
}

// IV returns a copy of the initialization vector.
func (k EncryptionKey) IV() []byte {
	return copyBytes(k.iv)
}

// Salt returns a copy of the treated salt.
func (k EncryptionKey) Salt() []byte {
	return copyBytes(k.salt)
}

// Context returns the key's context label, empty if none was set.
// Parsed keys always carry an empty label; the label is not serialized.
func (k EncryptionKey) Context() string {
	return k.context
}

// WithContext returns a copy of the key carrying the given context label.
// The label participates in Equal and Hash but not in Raw.
func (k EncryptionKey) WithContext(label string) EncryptionKey {
	k.context = label
	return k
}

// Equal reports whether both keys have the same scheme, key material,
// initialization vector, salt and context label. Byte fields are compared
// in constant time. Two keys with identical cryptographic material but
// different labels are not equal.
func (k EncryptionKey) Equal(other EncryptionKey) bool {
	return k.scheme.Format == other.scheme.Format &&
		k.context == other.context &&
		subtle.ConstantTimeCompare(k.keyData, other.keyData) == 1 &&
		subtle.ConstantTimeCompare(k.iv, other.iv) == 1 &&
		subtle.ConstantTimeCompare(k.salt, other.salt) == 1
}

// Hash returns a 64-bit FNV-1a digest over the same fields Equal compares.
// It is suitable for map keys and caches, not as a cryptographic commitment.
// Because the context label participates, identical key material under
// different labels hashes differently.
func (k EncryptionKey) Hash() uint64 {
	h := fnv.New64a()
	h.Write(k.scheme.Format.Encode())
	h.Write(k.keyData)
	h.Write(k.iv)
	h.Write(k.salt)
	h.Write([]byte(k.context))
	return h.Sum64()
}

// Wipe zeroes the key's sensitive buffers in place, leaving the key
// unusable. Copies made with WithContext share the same buffers and are
// wiped with it; slices previously handed out by the accessors are copies
// and remain the caller's responsibility.
func (k *EncryptionKey) Wipe() {
	memguard.WipeBytes(k.keyData)
	memguard.WipeBytes(k.iv)
	memguard.WipeBytes(k.salt)
}

// copyBytes returns a defensive copy, preventing callers from mutating
// internal state through a shared slice.
func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
