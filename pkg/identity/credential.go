// Package identity provides password hashing and verification for cauth.
//
// Passwords are hashed with argon2id, a memory-hard KDF, using a fresh
// cryptographically random salt per call. The result is a self-describing
// PHC-formatted ASCII string carrying the algorithm, its parameters, the salt
// and the derived key, so parameters can be tuned without invalidating
// existing hashes.
package identity

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrHash is returned when the KDF rejects its input.
var ErrHash = errors.New("password cannot be hashed")

// ErrMalformedHash is returned when an encoded hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// Argon2idParams holds the tunable argon2id cost parameters.
type Argon2idParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams returns the argon2id parameters used for new hashes.
// 64 MiB, 3 passes, 4 lanes matches the RFC 9106 second recommended option.
func DefaultParams() Argon2idParams {
	return Argon2idParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// HashPassword derives an argon2id hash of the given password with a fresh
// random salt and encodes it in PHC format:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<b64 salt>$<b64 key>
//
// Returns ErrHash if the password is empty. The password buffer is zeroed
// once the key has been derived.
func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, DefaultParams())
}

// HashPasswordWithParams is HashPassword with caller-supplied cost parameters.
func HashPasswordWithParams(password string, params Argon2idParams) (string, error) {
	if password == "" {
		return "", ErrHash
	}

	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	pwd := []byte(password)
	key := argon2.IDKey(pwd, salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	zero(pwd)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.Memory, params.Iterations, params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword recomputes the KDF with the parameters and salt embedded in
// the encoded hash and compares the result in constant time.
func VerifyPassword(password, encoded string) bool {
	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	pwd := []byte(password)
	derived := argon2.IDKey(pwd, salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(key)))
	zero(pwd)

	return subtle.ConstantTimeCompare(derived, key) == 1
}

// decodeHash parses a PHC-formatted argon2id hash.
func decodeHash(encoded string) (Argon2idParams, []byte, []byte, error) {
	var params Argon2idParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return params, nil, nil, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, ErrMalformedHash
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 || len(key) == 0 {
		return params, nil, nil, ErrMalformedHash
	}

	return params, salt, key, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
