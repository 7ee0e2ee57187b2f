package trie

import (
	"bytes"
	"encoding/gob"
)

// Encoder maps a value to its canonical byte-sequence representation for
// digest computation. It must be deterministic and injective on the domain
// of stored values: two distinct values must never encode to the same
// bytes, or digest sensitivity (spec property 4) breaks down.
type Encoder[V any] func(V) ([]byte, error)

// BytesEncoder is the identity Encoder for V = []byte.
func BytesEncoder(v []byte) ([]byte, error) {
	return v, nil
}

// StringEncoder is the identity Encoder for V = string.
func StringEncoder(v string) ([]byte, error) {
	return []byte(v), nil
}

// GobEncoder builds an Encoder for any gob-encodable V, using a fresh
// encoder per call since gob streams carry type information that must not
// leak between unrelated calls.
func GobEncoder[V any]() Encoder[V] {
	return func(v V) ([]byte, error) {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
