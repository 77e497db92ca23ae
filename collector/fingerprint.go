package collector

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint computes the deduplication hash over an item's identity fields.
// The parts and their order are part of the dedup contract: changing either
// re-ingests everything.
func Fingerprint(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}
