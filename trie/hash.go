package trie

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
)

// Digest is the fixed-width cryptographic summary of a node's subtree.
type Digest [32]byte

// emptyDigest is the sentinel digest of a node with no value and no
// children. The root of an empty trie carries this digest.
var emptyDigest Digest

// Hasher maps an arbitrary byte sequence to a 32-byte digest. Implementations
// must be deterministic and collision-resistant. Sum hashes one complete byte
// sequence per call and keeps no state between calls, since the preimage for
// a single node is not streamed across node boundaries (see Trie's digest
// protocol).
type Hasher interface {
	// Sum returns the hash of b.
	Sum(b []byte) Digest
}

// SHA256Hasher is the reference Hasher, backed by crypto/sha256.
type SHA256Hasher struct{}

// Sum implements Hasher.
func (SHA256Hasher) Sum(b []byte) Digest {
	return sha256.Sum256(b)
}

// BLAKE2bHasher is an alternate Hasher backed by golang.org/x/crypto/blake2b.
// It produces 32-byte digests like SHA256Hasher but is not interchangeable
// with it: two tries built with different Hashers over the same key-value
// pairs will in general disagree on RootDigest.
type BLAKE2bHasher struct{}

// Sum implements Hasher.
func (BLAKE2bHasher) Sum(b []byte) Digest {
	return blake2b.Sum256(b)
}

// preimage builds the digest preimage for a node per the trie's hashing
// protocol: H(label), optionally H(encode(value)), then each child's cached
// digest in ascending order of its key byte.
func preimage(dst []byte, labelHash Digest, valueHash *Digest, childDigests [][32]byte) []byte {
	dst = append(dst, labelHash[:]...)
	if valueHash != nil {
		dst = append(dst, valueHash[:]...)
	}
	for _, d := range childDigests {
		dst = append(dst, d[:]...)
	}
	return dst
}
