package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"taskhub/internal/apperr"
)

// argon2id parameters. Fixed for every new hash; verification reads the
// parameters embedded in the stored credential instead.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashPassword hashes a plain text password with argon2id and a fresh
// random salt, returning a PHC-encoded string:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
func HashPassword(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", apperr.Internal("could not generate salt", err)
	}

	digest := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// CheckPassword recomputes the hash with the parameters embedded in the
// stored credential and compares digests in constant time. A mismatch is
// (false, nil); a corrupt credential string is an error, since that means
// stored data is broken rather than the caller typing the wrong password.
func CheckPassword(plain, encoded string) (bool, error) {
	memory, iterations, threads, salt, digest, err := decodeHash(encoded)
	if err != nil {
		return false, apperr.Internal("malformed password hash", err)
	}

	computed := argon2.IDKey([]byte(plain), salt, iterations, memory, threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(digest, computed) == 1, nil
}

func decodeHash(encoded string) (memory, iterations uint32, threads uint8, salt, digest []byte, err error) {
	parts := strings.Split(encoded, "$")

	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("unexpected hash format")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("bad version segment: %w", err)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var p uint8
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &p); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("bad parameter segment: %w", err)
	}
	threads = p

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("bad salt encoding: %w", err)
	}

	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("bad digest encoding: %w", err)
	}

	if len(digest) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("empty digest")
	}

	return memory, iterations, threads, salt, digest, nil
}
