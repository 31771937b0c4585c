package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of the password. The scheme is
// unsalted and not key-stretched; it must stay byte-compatible with the
// hashes already stored for existing accounts, and login matches
// username+hash in a single query against it.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
