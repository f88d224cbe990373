package symkey

import (
	"crypto/sha256"
	"crypto/sha512"
	"sync"
	"testing"
)

// testFormat tags the scheme registered for tests. Its sizes match nothing
// built in, so size-mismatch paths are exercised deliberately.
const testFormat = Format(0x7E57)

const (
	testSeedSize = 16
	testIVSize   = 16
	testSaltSize = 32
)

// testDerive is a fast deterministic stand-in for a real KDF.
func testDerive(password, salt []byte) ([]byte, error) {
	h := sha256.New()
	h.Write(password)
	h.Write(salt)
	return h.Sum(nil), nil
}

var registerTestScheme sync.Once

func testScheme(t testing.TB) Scheme {
	t.Helper()
	registerTestScheme.Do(func() {
		err := RegisterScheme(Scheme{
			Format:            testFormat,
			SeedSize:          testSeedSize,
			IVSize:            testIVSize,
			StretchedSaltSize: testSaltSize,
			Hash:              sha256.New,
			DeriveKey:         testDerive,
		})
		if err != nil {
			t.Fatalf("RegisterScheme: %v", err)
		}
	})
	s, ok := SchemeFor(testFormat)
	if !ok {
		t.Fatal("test scheme not registered")
	}
	return s
}

// makeBytes returns n bytes of recognizable non-zero data.
func makeBytes(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestBuiltinSchemesRegistered(t *testing.T) {
	for _, f := range []Format{FormatScryptV1, FormatArgon2V1} {
		s, ok := SchemeFor(f)
		if !ok {
			t.Fatalf("SchemeFor(%#04x): not registered", uint16(f))
		}
		if s.SeedSize != defaultSeedSize {
			t.Errorf("seed size: got %d, want %d", s.SeedSize, defaultSeedSize)
		}
		if s.IVSize != gcmIVSize {
			t.Errorf("IV size: got %d, want %d", s.IVSize, gcmIVSize)
		}
		if s.StretchedSaltSize != sha256SaltSize {
			t.Errorf("salt size: got %d, want %d", s.StretchedSaltSize, sha256SaltSize)
		}
	}
}

func TestSchemeForUnknown(t *testing.T) {
	if _, ok := SchemeFor(Format(0xFFFF)); ok {
		t.Error("SchemeFor(0xFFFF): expected not registered")
	}
}

func TestRegisterSchemeDuplicate(t *testing.T) {
	s := testScheme(t)
	err := RegisterScheme(s)
	if !IsInvalidScheme(err) {
		t.Errorf("expected ErrInvalidScheme, got %v", err)
	}
}

func TestRegisterSchemeNilHash(t *testing.T) {
	err := RegisterScheme(Scheme{
		Format:            Format(0x7001),
		StretchedSaltSize: 32,
		DeriveKey:         testDerive,
	})
	if !IsInvalidScheme(err) {
		t.Errorf("expected ErrInvalidScheme, got %v", err)
	}
}

func TestRegisterSchemeNilDerive(t *testing.T) {
	err := RegisterScheme(Scheme{
		Format:            Format(0x7002),
		StretchedSaltSize: 32,
		Hash:              sha256.New,
	})
	if !IsInvalidScheme(err) {
		t.Errorf("expected ErrInvalidScheme, got %v", err)
	}
}

func TestRegisterSchemeNegativeSize(t *testing.T) {
	err := RegisterScheme(Scheme{
		Format:            Format(0x7003),
		SeedSize:          -1,
		StretchedSaltSize: 32,
		Hash:              sha256.New,
		DeriveKey:         testDerive,
	})
	if !IsInvalidScheme(err) {
		t.Errorf("expected ErrInvalidScheme, got %v", err)
	}
}

func TestRegisterSchemeHashSaltMismatch(t *testing.T) {
	// SHA-512 digests are 64 bytes; a 32-byte stretched salt cannot hold one.
	err := RegisterScheme(Scheme{
		Format:            Format(0x7004),
		SeedSize:          16,
		IVSize:            16,
		StretchedSaltSize: 32,
		Hash:              sha512.New,
		DeriveKey:         testDerive,
	})
	if !IsInvalidScheme(err) {
		t.Errorf("expected ErrInvalidScheme, got %v", err)
	}
}

func TestDefaultScheme(t *testing.T) {
	if got := DefaultScheme().Format; got != FormatScryptV1 {
		t.Errorf("DefaultScheme format: got %#04x, want %#04x", uint16(got), uint16(FormatScryptV1))
	}
}
