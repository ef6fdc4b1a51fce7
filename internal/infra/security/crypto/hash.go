package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSHA256 returns the hex digest of input.
func HashSHA256(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}
