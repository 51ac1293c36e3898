package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ClientKey derives a stable, non-reversible key for a client address so raw
// IPs never reach the rate-limit store.
func ClientKey(addr string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(addr))))
	return hex.EncodeToString(sum[:16])
}
