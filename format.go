package symkey

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// FormatSize is the fixed width in bytes of the leading format tag in a
// serialized key.
const FormatSize = 2

// Format is the version tag identifying which scheme a serialized key was
// derived under. It is the only fixed-width field in the serialized form;
// every other field's width follows from the scheme the tag resolves to.
type Format uint16

// Format tags of the built-in schemes.
const (
	// FormatScryptV1 is scrypt key stretching with HMAC-SHA256 salt
	// treatment.
	FormatScryptV1 Format = 0x0001

	// FormatArgon2V1 is Argon2id key stretching with HMAC-SHA256 salt
	// treatment.
	FormatArgon2V1 Format = 0x0002
)

// Encode returns the tag's fixed-width big-endian byte form.
func (f Format) Encode() []byte {
	b := make([]byte, FormatSize)
	binary.BigEndian.PutUint16(b, uint16(f))
	return b
}

// DecodeFormat reads a format tag from the leading bytes of data. It
// returns false if data is shorter than FormatSize or the tag does not
// resolve to a registered scheme.
func DecodeFormat(data []byte) (Format, bool) {
	if len(data) < FormatSize {
		return 0, false
	}
	f := Format(binary.BigEndian.Uint16(data))
	if _, ok := SchemeFor(f); !ok {
		return 0, false
	}
	return f, true
}

// Raw serializes the key to its binary form: format tag, key data,
// initialization vector and salt concatenated with no separators or length
// prefixes. The context label is not included. Raw never fails; parsing the
// result with ParseKey reconstructs the key.
func (k EncryptionKey) Raw() []byte {
	var buf bytes.Buffer
	buf.Grow(FormatSize + len(k.keyData) + len(k.iv) + len(k.salt))
	buf.Write(k.scheme.Format.Encode())
	buf.Write(k.keyData)
	buf.Write(k.iv)
	buf.Write(k.salt)
	return buf.Bytes()
}

// ParseKey reconstructs a key from its Raw serialization.
//
// Only the format tag has a statically known width, so decoding runs from
// both ends: the tag resolves to a scheme, the salt is taken off the tail,
// the IV off the new tail, and whatever remains in the middle is the key
// data, verbatim. Key material is reconstructed exactly as serialized,
// never re-derived. All returned slices are defensive copies, safe from
// caller mutation of data.
func ParseKey(data []byte) (EncryptionKey, error) {
	key, err := parseKey(data)
	recordParse(err)
	return key, err
}

func parseKey(data []byte) (EncryptionKey, error) {
	f, ok := DecodeFormat(data)
	if !ok {
		return EncryptionKey{}, fmt.Errorf("%w: no recognized format tag", ErrBadFormat)
	}
	scheme, _ := SchemeFor(f)

	rest := data[FormatSize:]
	if len(rest) < scheme.StretchedSaltSize {
		return EncryptionKey{}, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrSaltSize, scheme.StretchedSaltSize, len(rest))
	}
	salt := copyBytes(rest[len(rest)-scheme.StretchedSaltSize:])
	rest = rest[:len(rest)-scheme.StretchedSaltSize]

	if len(rest) < scheme.IVSize {
		return EncryptionKey{}, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrIVSize, scheme.IVSize, len(rest))
	}
	iv := copyBytes(rest[len(rest)-scheme.IVSize:])
	rest = rest[:len(rest)-scheme.IVSize]

	return EncryptionKey{
		scheme:  scheme,
		keyData: copyBytes(rest),
		iv:      iv,
		salt:    salt,
	}, nil
}
