package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashing defaults
const (
	DefaultSalt       = "financial_analyzer_salt"
	DefaultIterations = 100000
	keyLength         = sha256.Size
)

// HashPassword derives a hex-encoded PBKDF2-HMAC-SHA256 key from password.
func HashPassword(password, salt string, iterations int) string {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword compares password against a stored hash in constant time.
func VerifyPassword(password, hash, salt string, iterations int) bool {
	computed := HashPassword(password, salt, iterations)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
