// Package hash derives the stable device identity: a SHA-256 digest, its
// 12-character short form, and a deterministic two-word pet-name, all
// seeded from the same input so one physical device always maps to the
// same identity.
package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Sha256 returns the lowercase hex digest of input.
func Sha256(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// ShortLength is the number of hex characters in a short identity.
const ShortLength = 12

// Sha256Short returns the first 12 hex characters of the digest.
func Sha256Short(input string) string {
	return Sha256(input)[:ShortLength]
}

// Petname returns a deterministic "adjective-animal" label for input.
// Equal inputs always yield equal names; the words are indexed from the
// input's digest, so no random source is involved.
func Petname(input string) string {
	sum := sha256.Sum256([]byte(input))
	adj := binary.LittleEndian.Uint32(sum[0:4]) % uint32(len(adjectives))
	animal := binary.LittleEndian.Uint32(sum[4:8]) % uint32(len(animals))
	return adjectives[adj] + "-" + animals[animal]
}
