package symkey

import "errors"

var (
	// ErrBadFormat is returned when serialized key data does not start with a
	// recognized format tag.
	ErrBadFormat = errors.New("symkey: bad format data")

	// ErrSeedSize is returned when a derivation seed does not match the
	// scheme's required seed size.
	ErrSeedSize = errors.New("symkey: invalid seed size")

	// ErrSaltSize is returned when a supplied or parsed salt does not match
	// the scheme's stretched salt size.
	ErrSaltSize = errors.New("symkey: invalid salt size")

	// ErrIVSize is returned when a supplied or parsed initialization vector
	// does not match the scheme's IV size.
	ErrIVSize = errors.New("symkey: invalid initialization vector size")

	// ErrInvalidScheme is returned when a scheme fails registration checks.
	ErrInvalidScheme = errors.New("symkey: invalid scheme")
)

// IsBadFormat returns true if the error is or wraps ErrBadFormat.
func IsBadFormat(err error) bool {
	return errors.Is(err, ErrBadFormat)
}

// IsSeedSize returns true if the error is or wraps ErrSeedSize.
func IsSeedSize(err error) bool {
	return errors.Is(err, ErrSeedSize)
}

// IsSaltSize returns true if the error is or wraps ErrSaltSize.
func IsSaltSize(err error) bool {
	return errors.Is(err, ErrSaltSize)
}

// IsIVSize returns true if the error is or wraps ErrIVSize.
func IsIVSize(err error) bool {
	return errors.Is(err, ErrIVSize)
}

// IsInvalidScheme returns true if the error is or wraps ErrInvalidScheme.
func IsInvalidScheme(err error) bool {
	return errors.Is(err, ErrInvalidScheme)
}
