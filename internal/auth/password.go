package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SchemePBKDF2SHA512 identifies passlib's pbkdf2_sha512 modular crypt format
	SchemePBKDF2SHA512 = "pbkdf2_sha512"

	// SchemePlaintext identifies legacy unhashed passwords (deprecated)
	SchemePlaintext = "plaintext"

	// DefaultPBKDF2Rounds matches the host application's default work factor
	DefaultPBKDF2Rounds = 600000

	pbkdf2Prefix   = "$pbkdf2-sha512$"
	pbkdf2SaltSize = 16
	pbkdf2KeySize  = 64
)

var (
	// ErrUnsupportedScheme is returned when a stored hash uses a scheme this context cannot verify
	ErrUnsupportedScheme = errors.New("unsupported password hash scheme")

	// ErrMalformedHash is returned when a stored hash cannot be parsed
	ErrMalformedHash = errors.New("malformed password hash")
)

// ab64 is passlib's "adapted base64": standard alphabet with '.' in place of '+', no padding
var ab64 = base64.RawStdEncoding

func ab64Encode(b []byte) string {
	return strings.ReplaceAll(ab64.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	s = strings.TrimRight(strings.ReplaceAll(s, ".", "+"), "=")
	return ab64.DecodeString(s)
}

// CryptContext verifies and produces password hashes compatible with passlib's
// CryptContext(["pbkdf2_sha512", "plaintext"], deprecated=["plaintext"]).
type CryptContext struct {
	rounds int
}

// NewCryptContext creates a context hashing with the given PBKDF2 rounds (default when <= 0)
func NewCryptContext(rounds int) *CryptContext {
	if rounds <= 0 {
		rounds = DefaultPBKDF2Rounds
	}
	return &CryptContext{rounds: rounds}
}

// Rounds returns the PBKDF2 iteration count used for new hashes
func (c *CryptContext) Rounds() int {
	return c.rounds
}

// Identify returns the scheme of a stored hash
func (c *CryptContext) Identify(hash string) (string, error) {
	switch {
	case hash == "":
		return "", ErrMalformedHash
	case strings.HasPrefix(hash, pbkdf2Prefix):
		return SchemePBKDF2SHA512, nil
	case strings.HasPrefix(hash, "$"):
		return "", ErrUnsupportedScheme
	default:
		return SchemePlaintext, nil
	}
}

// Verify reports whether password matches the stored hash
func (c *CryptContext) Verify(password, hash string) (bool, error) {
	scheme, err := c.Identify(hash)
	if err != nil {
		return false, err
	}

	switch scheme {
	case SchemePBKDF2SHA512:
		parsed, err := parsePBKDF2(hash)
		if err != nil {
			return false, err
		}
		derived := pbkdf2.Key([]byte(password), parsed.salt, parsed.rounds, len(parsed.checksum), sha512.New)
		return subtle.ConstantTimeCompare(derived, parsed.checksum) == 1, nil
	default:
		return subtle.ConstantTimeCompare([]byte(password), []byte(hash)) == 1, nil
	}
}

// Hash produces a pbkdf2_sha512 hash with a random salt
func (c *CryptContext) Hash(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return formatPBKDF2(password, salt, c.rounds), nil
}

// NeedsUpdate reports whether a stored hash uses a deprecated scheme or fewer rounds than configured
func (c *CryptContext) NeedsUpdate(hash string) bool {
	scheme, err := c.Identify(hash)
	if err != nil {
		return false
	}
	if scheme == SchemePlaintext {
		return true
	}
	parsed, err := parsePBKDF2(hash)
	if err != nil {
		return false
	}
	return parsed.rounds < c.rounds
}

type pbkdf2Hash struct {
	rounds   int
	salt     []byte
	checksum []byte
}

// parsePBKDF2 parses "$pbkdf2-sha512$<rounds>$<salt>$<checksum>"
func parsePBKDF2(hash string) (*pbkdf2Hash, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 4 fields, got %d", ErrMalformedHash, len(parts)-1)
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds < 1 {
		return nil, fmt.Errorf("%w: invalid rounds %q", ErrMalformedHash, parts[2])
	}

	salt, err := ab64Decode(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt encoding", ErrMalformedHash)
	}

	checksum, err := ab64Decode(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checksum encoding", ErrMalformedHash)
	}
	if len(checksum) != pbkdf2KeySize {
		return nil, fmt.Errorf("%w: checksum must be %d bytes, got %d", ErrMalformedHash, pbkdf2KeySize, len(checksum))
	}

	return &pbkdf2Hash{rounds: rounds, salt: salt, checksum: checksum}, nil
}

func formatPBKDF2(password string, salt []byte, rounds int) string {
	checksum := pbkdf2.Key([]byte(password), salt, rounds, pbkdf2KeySize, sha512.New)
	return fmt.Sprintf("%s%d$%s$%s", pbkdf2Prefix, rounds, ab64Encode(salt), ab64Encode(checksum))
}
