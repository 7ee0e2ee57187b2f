package trie

import "testing"

type kv struct {
	key   string
	value int
}

func buildTrie(t *testing.T, pairs []kv) *Trie[int] {
	t.Helper()
	tr := newTestTrie()
	for _, p := range pairs {
		mustInsert(t, tr, p.key, p.value)
	}
	return tr
}

// TestDigestOrderIndependence is scenario S3 / invariant property 3: two
// permutations of the same set of pairs must produce equal root digests.
func TestDigestOrderIndependence(t *testing.T) {
	forward := []kv{
		{"q", 1}, {"qw", 2}, {"qwe", 3}, {"qwer", 4}, {"qwert", 5}, {"qwerty", 6},
	}
	reverse := make([]kv, len(forward))
	for i, p := range forward {
		reverse[len(forward)-1-i] = p
	}

	a := buildTrie(t, forward)
	b := buildTrie(t, reverse)
	if !a.Equal(b) {
		t.Errorf("digests differ across insertion order: %x != %x", a.RootDigest(), b.RootDigest())
	}
}

// TestDigestSensitivity is scenario S4 / invariant property 4: changing one
// key of the S1 set ("qwerty" becomes "qqwerty") must change the root digest.
func TestDigestSensitivity(t *testing.T) {
	a := buildTrie(t, []kv{
		{"q", 1}, {"qw", 2}, {"qwe", 3}, {"qwer", 4}, {"qwert", 5}, {"qwerty", 6},
	})
	b := buildTrie(t, []kv{
		{"q", 1}, {"qw", 2}, {"qwe", 3}, {"qwer", 4}, {"qwert", 5}, {"qqwerty", 6},
	})
	if a.Equal(b) {
		t.Errorf("digests equal despite differing keys: %x", a.RootDigest())
	}
}

// TestDigestSensitivityToValue changes a single value byte and expects a
// different digest, the value half of invariant property 4.
func TestDigestSensitivityToValue(t *testing.T) {
	a := buildTrie(t, []kv{{"same-key", 1}})
	b := buildTrie(t, []kv{{"same-key", 2}})
	if a.Equal(b) {
		t.Errorf("digests equal despite differing values: %x", a.RootDigest())
	}
}
