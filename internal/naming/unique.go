package naming

import (
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"strings"
)

// suffixAlphabet is upper-case letters without I and O plus digits without
// 0 and 1. Suffixes are rendered lower-case.
const suffixAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	minSuffixLength = 2
	maxSuffixLength = 6
)

// UsedSet reports identifiers already taken in the current allocation scope.
type UsedSet interface {
	Contains(id string) bool
}

// IdentifierSet is a case-insensitive set of identifiers.
type IdentifierSet map[string]struct{}

// NewIdentifierSet returns an empty set.
func NewIdentifierSet() IdentifierSet {
	return make(IdentifierSet)
}

// Add records id as used.
func (s IdentifierSet) Add(id string) {
	s[strings.ToUpper(id)] = struct{}{}
}

// Contains implements UsedSet.
func (s IdentifierSet) Contains(id string) bool {
	_, ok := s[strings.ToUpper(id)]
	return ok
}

// Resolve returns candidate if it is unused, otherwise a deterministic
// variant seeded by stableKey: the candidate truncated to make room for a
// 2-6 symbol suffix, and as a last resort a full hash-derived name.
// The same candidate, key and used set always give the same answer.
func Resolve(candidate, stableKey string, used UsedSet) string {
	if !used.Contains(candidate) {
		return candidate
	}

	seed := uint64(Seed(stableKey))
	for n := minSuffixLength; n <= maxSuffixLength; n++ {
		prefix := truncate(candidate, MaxLength-n)
		for attempt := 0; attempt < suffixAttempts(n); attempt++ {
			name := prefix + encodeSuffix(seed+uint64(attempt), n)
			if !used.Contains(name) {
				return name
			}
		}
	}

	// Collisions between two fallback names are not handled.
	return FallbackName(stableKey)
}

// Seed is the first four bytes of the SHA-256 digest of key, big-endian.
func Seed(key string) uint32 {
	sum := sha256.Sum256([]byte(key))
	return binary.BigEndian.Uint32(sum[:4])
}

// FallbackName derives a full-length name from two differently salted
// digests of key.
func FallbackName(key string) string {
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	first := sha256.Sum256([]byte("mpx/fallback/1:" + key))
	second := sha256.Sum256([]byte("mpx/fallback/2:" + key))
	name := enc.EncodeToString(first[:])[:8] + enc.EncodeToString(second[:])[:8]
	return truncate(name, MaxLength)
}

func suffixAttempts(n int) int {
	attempts := 64 << (n - minSuffixLength)
	if attempts > 512 {
		attempts = 512
	}
	return attempts
}

// encodeSuffix renders the low-order n base-32 symbols of v.
func encodeSuffix(v uint64, n int) string {
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = suffixAlphabet[v%uint64(len(suffixAlphabet))]
		v /= uint64(len(suffixAlphabet))
	}
	return strings.ToLower(string(buf))
}
