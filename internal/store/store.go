// Package store provides a flat key-value export/import mechanism for a
// trie.Trie, adapted from jaiminpan-mt-trie's accdb package. It never
// persists trie structure: Dump walks an explicit key list through Get and
// writes plain key-value pairs; Load re-inserts those pairs into a fresh
// trie.Trie, rebuilding structure and digest from scratch. This keeps trie
// persistence (the Non-goal spec.md §1 excludes) entirely out of the core
// package.
package store

import (
	"github.com/pkg/errors"

	"github.com/jaiminpan/mtrie/trie"
)

// KeyValueReader wraps the Has and Get methods of a backing key-value
// store.
type KeyValueReader interface {
	Has(key []byte) (bool, error)
	Get(key []byte) ([]byte, error)
}

// KeyValueWriter wraps the Put and Delete methods of a backing key-value
// store.
type KeyValueWriter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// KeyValueStore is a full read-write key-value store plus iteration over
// its keys, needed by Dump/Load.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
	NewBatch() Batch
	Keys() [][]byte
}

// Dump exports the values bound to keys (in the order given) from tr into
// dst, using encode as the value-to-bytes conversion. It is the caller's
// responsibility to supply the full key list; Dump does not (and, since the
// trie has no iteration API — spec.md §1 Non-goals — cannot) discover keys
// on its own.
func Dump[V any](tr *trie.Trie[V], keys [][]byte, encode func(V) ([]byte, error), dst KeyValueWriter) error {
	for _, key := range keys {
		value, ok := tr.Get(key)
		if !ok {
			continue
		}
		encoded, err := encode(*value)
		if err != nil {
			return errors.Wrapf(err, "store: encode value for key %x", key)
		}
		if err := dst.Put(key, encoded); err != nil {
			return errors.Wrapf(err, "store: put key %x", key)
		}
	}
	return nil
}

// Load imports every key-value pair found in src into a fresh trie built
// with hasher and encode, decoding each value with decode.
func Load[V any](src KeyValueStore, hasher trie.Hasher, encode func(V) ([]byte, error), decode func([]byte) (V, error)) (*trie.Trie[V], error) {
	tr := trie.New[V](hasher, encode)
	for _, key := range src.Keys() {
		raw, err := src.Get(key)
		if err != nil {
			return nil, errors.Wrapf(err, "store: get key %x", key)
		}
		value, err := decode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "store: decode value for key %x", key)
		}
		if err := tr.Insert(key, value); err != nil {
			return nil, errors.Wrapf(err, "store: insert key %x", key)
		}
	}
	return tr, nil
}
