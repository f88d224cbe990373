package symkey

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/unicode/norm"
)

// Option configures the random derivation path.
type Option func(*deriveConfig)

type deriveConfig struct {
	rand io.Reader
}

// WithRand substitutes the randomness source used for fresh seeds and IVs.
// Intended for deterministic tests; production callers should keep the
// default crypto/rand source.
func WithRand(r io.Reader) Option {
	return func(cfg *deriveConfig) {
		cfg.rand = r
	}
}

// NewRandomKey derives a key from password with a freshly generated random
// seed and initialization vector, sized by the scheme. Two calls never
// produce the same key material; callers that need a reproducible key must
// keep the seed or treated salt and use NewSeedKey or NewSaltKey instead.
//
// The generated sizes always satisfy the scheme, so the only expected
// failures are a failing randomness source or a scheme whose declared sizes
// are internally inconsistent. Both are reported, not swallowed.
func NewRandomKey(password string, keywords []string, scheme Scheme, opts ...Option) (EncryptionKey, error) {
	cfg := deriveConfig{rand: rand.Reader}
	for _, opt := range opts {
		opt(&cfg)
	}

	seed := make([]byte, scheme.SeedSize)
	if _, err := io.ReadFull(cfg.rand, seed); err != nil {
		return EncryptionKey{}, fmt.Errorf("symkey: failed to generate seed: %w", err)
	}
	iv := make([]byte, scheme.IVSize)
	if _, err := io.ReadFull(cfg.rand, iv); err != nil {
		return EncryptionKey{}, fmt.Errorf("symkey: failed to generate IV: %w", err)
	}

	salt, err := treatSeed(seed, keywords, scheme)
	if err == nil {
		var key EncryptionKey
		key, err = newSaltKey(password, salt, iv, scheme)
		recordDerive("random", err)
		return key, err
	}
	recordDerive("random", err)
	return EncryptionKey{}, err
}

// NewSeedKey derives a key from password and a caller-supplied seed and
// initialization vector. The seed is treated into a salt: an HMAC keyed by
// the seed, using the scheme's hash, over each keyword in order. Reusing
// the same seed, keywords and IV reproduces the same key.
func NewSeedKey(password string, keywords []string, seed, iv []byte, scheme Scheme) (EncryptionKey, error) {
	salt, err := treatSeed(seed, keywords, scheme)
	if err != nil {
		recordDerive("seed", err)
		return EncryptionKey{}, err
	}
	key, err := newSaltKey(password, salt, iv, scheme)
	recordDerive("seed", err)
	return key, err
}

// NewSaltKey derives a key from password and an already treated salt. This
// is the canonical constructor: every other path funnels through it, so
// password normalization happens exactly once regardless of entry point.
// The salt and IV are stored verbatim and must already have the scheme's
// required sizes.
func NewSaltKey(password string, salt, iv []byte, scheme Scheme) (EncryptionKey, error) {
	key, err := newSaltKey(password, salt, iv, scheme)
	recordDerive("salt", err)
	return key, err
}

func newSaltKey(password string, salt, iv []byte, scheme Scheme) (EncryptionKey, error) {
	if len(salt) != scheme.StretchedSaltSize {
		return EncryptionKey{}, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrSaltSize, scheme.StretchedSaltSize, len(salt))
	}
	if len(iv) != scheme.IVSize {
		return EncryptionKey{}, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrIVSize, scheme.IVSize, len(iv))
	}

	span := startSpan("symkey.DeriveKey",
		attribute.Int("symkey.format", int(scheme.Format)))
	defer span.End()

	keyData, err := scheme.DeriveKey(normalizePassword(password), salt)
	if err != nil {
		span.RecordError(err)
		return EncryptionKey{}, fmt.Errorf("symkey: key derivation failed: %w", err)
	}

	return EncryptionKey{
		scheme:  scheme,
		keyData: keyData,
		iv:      copyBytes(iv),
		salt:    copyBytes(salt),
	}, nil
}

// treatSeed stretches a raw seed into a treated salt: an HMAC keyed by the
// seed over the keywords, each written in sequence. Keyword order matters.
func treatSeed(seed []byte, keywords []string, scheme Scheme) ([]byte, error) {
	if len(seed) != scheme.SeedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrSeedSize, scheme.SeedSize, len(seed))
	}
	mac := hmac.New(scheme.Hash, seed)
	for _, kw := range keywords {
		mac.Write([]byte(kw))
	}
	return mac.Sum(nil), nil
}

// normalizePassword trims surrounding whitespace and newlines, then applies
// NFKD, so compatibility-equivalent spellings of the same password stretch
// to identical key material.
func normalizePassword(password string) []byte {
	return []byte(norm.NFKD.String(strings.TrimSpace(password)))
}
