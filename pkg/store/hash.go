package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyPrefix starts every document key.
const KeyPrefix = "scene:"

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Key returns the content-addressed key of an encoded document:
// "scene:" followed by the SHA-256 of data.
func Key(data []byte) string {
	return KeyPrefix + Hash(data)
}
