package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 sum, the same shape as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by parts, in order.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	h.Write(content[:])
	for _, p := range parts {
		h.Write(p)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

// String is the full lower-case hex form.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Short is the first 12 hex digits, for display.
func (d Digest) Short() string { return d.String()[:12] }
