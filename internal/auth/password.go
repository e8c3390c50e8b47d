package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const saltBytes = 16

// HashPassword derives the stored credential for a password. When salt is
// empty a fresh random hex salt is generated. The digest is
// hex(SHA-256(password || salt)), the format of the existing password_hash and
// password_salt columns. There is no key stretching; the scheme is kept for
// compatibility with rows written by earlier deployments.
func HashPassword(password, salt string) (hash, usedSalt string, err error) {
	if salt == "" {
		buf := make([]byte, saltBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", "", fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(buf)
	}

	sum := sha256.Sum256([]byte(password + salt))

	return hex.EncodeToString(sum[:]), salt, nil
}

// VerifyPassword recomputes the digest with the stored salt and compares it
// against the stored hash.
func VerifyPassword(password, storedHash, salt string) bool {
	hash, _, err := HashPassword(password, salt)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(hash), []byte(storedHash)) == 1
}
