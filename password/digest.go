package password

import (
	"crypto/sha256"
	"encoding/base64"
)

// Digest defines a public type used by authflow APIs.
//
// Digest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Digest struct{}

// NewDigest describes the newdigest operation and its observable behavior.
//
// NewDigest does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewDigest() *Digest {
	return &Digest{}
}

// Hash describes the hash operation and its observable behavior.
//
// Hash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (*Digest) Hash(plaintext string) (string, error) {
	// Raw string bytes exactly as provided, no Unicode normalization.
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
