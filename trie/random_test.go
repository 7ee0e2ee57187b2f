package trie

import (
	"testing"

	fuzz "github.com/google/gofuzz"
)

// TestRandomLarge is scenario S5: insert 1000 random 32-byte keys with
// distinct uint32 values, verify every Get, then remove each and check the
// trie collapses back to the empty-root sentinel digest.
func TestRandomLarge(t *testing.T) {
	const n = 1000
	f := fuzz.NewWithSeed(1).NilChance(0).NumElements(32, 32)

	type entry struct {
		key   [32]byte
		value uint32
	}

	seen := make(map[[32]byte]bool, n)
	entries := make([]entry, 0, n)
	for len(entries) < n {
		var e entry
		f.Fuzz(&e.key)
		if seen[e.key] {
			continue
		}
		seen[e.key] = true
		e.value = uint32(len(entries))
		entries = append(entries, e)
	}

	tr := New[uint32](nil, func(v uint32) ([]byte, error) {
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}, nil
	})

	for _, e := range entries {
		if err := tr.Insert(e.key[:], e.value); err != nil {
			t.Fatalf("insert %x: %v", e.key, err)
		}
	}
	for _, e := range entries {
		got, ok := tr.Get(e.key[:])
		if !ok {
			t.Fatalf("get %x: not found", e.key)
		}
		if *got != e.value {
			t.Errorf("get %x: got %d, want %d", e.key, *got, e.value)
		}
	}
	for _, e := range entries {
		got, ok := tr.Remove(e.key[:])
		if !ok {
			t.Fatalf("remove %x: not found", e.key)
		}
		if got != e.value {
			t.Errorf("remove %x: got %d, want %d", e.key, got, e.value)
		}
	}
	if tr.RootDigest() != emptyDigest {
		t.Errorf("expected empty digest after removing all entries, got %x", tr.RootDigest())
	}
}
