package symkey

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/scrypt"
)

// KDF parameters for the built-in schemes.
const (
	// derivedKeySize is the key material length produced by the built-in
	// schemes (256 bits, sized for AES-256).
	derivedKeySize = 32

	// scryptN, scryptR, scryptP are the scrypt cost parameters for
	// FormatScryptV1. N=32768 is memory-hard enough for server use while
	// staying practical.
	scryptN = 32768
	scryptR = 8
	scryptP = 1

	// argon2Time, argon2Memory, argon2Threads are the Argon2id parameters
	// for FormatArgon2V1 (64 MiB memory cost).
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4

	// defaultSeedSize is the seed length for the built-in schemes.
	defaultSeedSize = 32

	// gcmIVSize is the IV length for the built-in schemes, matching the
	// AES-GCM nonce size.
	gcmIVSize = 12

	// sha256SaltSize is the stretched salt length for schemes whose salt
	// treatment is HMAC-SHA256.
	sha256SaltSize = 32
)

// Scheme bundles a format tag with the byte sizes and primitives key
// derivation depends on. Sizes are fixed per format: a serialized key's
// leading tag is enough to recover them.
type Scheme struct {
	// Format is the version tag written at the front of serialized keys.
	Format Format

	// SeedSize is the required length of a derivation seed in bytes.
	SeedSize int

	// IVSize is the required length of an initialization vector in bytes.
	IVSize int

	// StretchedSaltSize is the required length of a treated salt in bytes.
	// It must equal the output size of Hash, since the treated salt is an
	// HMAC digest.
	StretchedSaltSize int

	// Hash constructs the hash function used for HMAC salt treatment.
	Hash func() hash.Hash

	// DeriveKey stretches a normalized password and a treated salt into key
	// material. Implementations must be deterministic.
	DeriveKey func(password, salt []byte) ([]byte, error)
}

var (
	schemeMu sync.RWMutex
	schemes  = make(map[Format]Scheme)
)

func init() {
	builtin := []Scheme{
		{
			Format:            FormatScryptV1,
			SeedSize:          defaultSeedSize,
			IVSize:            gcmIVSize,
			StretchedSaltSize: sha256SaltSize,
			Hash:              sha256.New,
			DeriveKey:         deriveScrypt,
		},
		{
			Format:            FormatArgon2V1,
			SeedSize:          defaultSeedSize,
			IVSize:            gcmIVSize,
			StretchedSaltSize: sha256SaltSize,
			Hash:              sha256.New,
			DeriveKey:         deriveArgon2,
		},
	}
	for _, s := range builtin {
		if err := RegisterScheme(s); err != nil {
			panic(err)
		}
	}
}

// RegisterScheme makes a scheme available for format tag resolution during
// parsing. It validates the scheme's internal consistency and rejects
// duplicate format tags. Safe for concurrent use, though registration is
// typically done from an init function.
func RegisterScheme(s Scheme) error {
	if s.SeedSize < 0 || s.IVSize < 0 || s.StretchedSaltSize < 0 {
		return fmt.Errorf("%w: negative component size", ErrInvalidScheme)
	}
	if s.Hash == nil {
		return fmt.Errorf("%w: nil hash", ErrInvalidScheme)
	}
	if s.DeriveKey == nil {
		return fmt.Errorf("%w: nil derive function", ErrInvalidScheme)
	}
	if got := s.Hash().Size(); got != s.StretchedSaltSize {
		return fmt.Errorf("%w: hash output is %d bytes, stretched salt size is %d",
			ErrInvalidScheme, got, s.StretchedSaltSize)
	}

	schemeMu.Lock()
	defer schemeMu.Unlock()
	if _, ok := schemes[s.Format]; ok {
		return fmt.Errorf("%w: format %#04x already registered", ErrInvalidScheme, uint16(s.Format))
	}
	schemes[s.Format] = s
	return nil
}

// SchemeFor returns the registered scheme for a format tag.
func SchemeFor(f Format) (Scheme, bool) {
	schemeMu.RLock()
	defer schemeMu.RUnlock()
	s, ok := schemes[f]
	return s, ok
}

// DefaultScheme returns the scheme new callers should derive keys with.
func DefaultScheme() Scheme {
	s, _ := SchemeFor(FormatScryptV1)
	return s
}

func deriveScrypt(password, salt []byte) ([]byte, error) {
	return scrypt.Key(password, salt, scryptN, scryptR, scryptP, derivedKeySize)
}

func deriveArgon2(password, salt []byte) ([]byte, error) {
	return argon2.IDKey(password, salt, argon2Time, argon2Memory, argon2Threads, derivedKeySize), nil
}
