// Package checksum provides content digests used as weak note version tags.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short returns an abbreviated digest suitable for list output.
func Short(data []byte) string {
	return Sum(data)[:12]
}
