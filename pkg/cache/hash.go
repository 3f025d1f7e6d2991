package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the SHA-256 hash of data as a 64-character hex string.
// Netlist text and design JSON are hashed with this to form cache keys,
// so equal content always maps to the same key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced key from the hash of its parts. Parts are
// JSON-encoded before hashing so numeric and string components cannot
// collide by concatenation.
func hashKey(ns string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", ns, Hash(data))
}
