package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key prefixes.
const (
	prefixArtifact = "artifact"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKeyOpts identifies one encoded composite.
type ArtifactKeyOpts struct {
	Macro  string `json:"macro"`
	Micro  string `json:"micro"`
	Format string `json:"format"`
	Scale  int    `json:"scale"`
	Seed   uint64 `json:"seed"`

	// Params holds the compositor geometry and colors. It must be JSON
	// serializable.
	Params any `json:"params"`
}

// ArtifactKey returns the cache key of an encoded composite.
func ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, opts)
}
