package trie

import (
	"bytes"
	"sort"
)

// Node is one vertex of the radix tree. The root's label is the longest
// common prefix of every stored key (empty for an empty trie); every other
// node's label is non-empty. A node with no value and no children is only
// ever permitted to be the root; a node with no value and exactly one child
// is collapsed by compress wherever it appears, the root included.
type Node[V any] struct {
	value    *V
	label    []byte
	children map[byte]*Node[V]
	digest   Digest
}

func (n *Node[V]) isEmpty() bool {
	return n.value == nil && len(n.children) == 0
}

// lcp returns the length of the longest common prefix of a and b.
func lcp(a, b []byte) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	i := 0
	for i < max && a[i] == b[i] {
		i++
	}
	return i
}

// get implements the lookup algorithm of spec.md §4.2.1.
func (n *Node[V]) get(key []byte) (*V, bool) {
	if len(n.label) != 0 && !bytes.HasPrefix(key, n.label) {
		return nil, false
	}
	if len(key) == len(n.label) {
		if n.value == nil {
			return nil, false
		}
		return n.value, true
	}
	suffix := key[len(n.label):]
	child, ok := n.children[suffix[0]]
	if !ok {
		return nil, false
	}
	return child.get(suffix)
}

// insert implements the four-case insertion algorithm of spec.md §4.2.2.
// KeyAlreadyPresent is detected before anything is modified. An encoder
// error from recomputeDigest can leave the receiver partially updated;
// Trie.Insert encodes the value before calling insert, so with a
// deterministic Encoder that error does not arise here.
func (n *Node[V]) insert(key []byte, value V, h Hasher, enc Encoder[V]) error {
	if n.isEmpty() && len(n.label) == 0 {
		// Case A: first insert into an empty (root) node.
		n.label = append([]byte(nil), key...)
		v := value
		n.value = &v
		return n.recomputeDigest(h, enc)
	}

	l := lcp(n.label, key)
	switch {
	case l == len(n.label) && l == len(key):
		// Case B: exact match.
		if n.value != nil {
			return KeyAlreadyPresent
		}
		v := value
		n.value = &v
		return n.recomputeDigest(h, enc)

	case l == len(n.label) && l < len(key):
		// Case C: descend into (or create) the child for the remaining suffix.
		if err := n.insertDescend(key[l:], value, h, enc); err != nil {
			return err
		}
		return n.recomputeDigest(h, enc)

	default:
		// Case D: the edge must be split at position l.
		if err := n.split(l, key, value, h, enc); err != nil {
			return err
		}
		return n.recomputeDigest(h, enc)
	}
}

// insertDescend recurses into the child keyed by suffix[0], creating it if
// absent. It implements Case C of spec.md §4.2.2 and is also reused by split
// (§4.2.2 Case D step 5) for the post-split remainder.
func (n *Node[V]) insertDescend(suffix []byte, value V, h Hasher, enc Encoder[V]) error {
	if child, ok := n.children[suffix[0]]; ok {
		return child.insert(suffix, value, h, enc)
	}
	child := &Node[V]{label: append([]byte(nil), suffix...)}
	v := value
	child.value = &v
	if err := child.recomputeDigest(h, enc); err != nil {
		return err
	}
	if n.children == nil {
		n.children = make(map[byte]*Node[V])
	}
	n.children[suffix[0]] = child
	return nil
}

// split implements Case D of spec.md §4.2.2: the current node's edge is
// split at position l, pushing the existing value/children/label-suffix
// down into a freshly created child.
func (n *Node[V]) split(l int, key []byte, value V, h Hasher, enc Encoder[V]) error {
	oldLabel := append([]byte(nil), n.label[l:]...)
	oldValue := n.value
	oldChildren := n.children

	n.label = append([]byte(nil), n.label[:l]...)
	n.value = nil
	n.children = nil

	m := &Node[V]{label: oldLabel, value: oldValue, children: oldChildren}
	if err := m.recomputeDigest(h, enc); err != nil {
		return err
	}
	n.children = map[byte]*Node[V]{oldLabel[0]: m}

	if l == len(key) {
		v := value
		n.value = &v
		return nil
	}
	return n.insertDescend(key[l:], value, h, enc)
}

// remove implements spec.md §4.2.3. It never fails: an encoder error while
// recompressing digests after removal would mean the same value failed to
// re-encode deterministically after having already encoded successfully at
// insertion time, which is an Encoder contract violation, not a reachable
// runtime condition — see mustRecomputeDigest.
func (n *Node[V]) remove(key []byte, h Hasher, enc Encoder[V]) (val V, removed bool) {
	if len(n.label) != 0 && !bytes.HasPrefix(key, n.label) {
		return val, false
	}
	if len(key) == len(n.label) {
		if n.value == nil {
			return val, false
		}
		v := *n.value
		n.value = nil
		n.compress(h, enc)
		return v, true
	}

	suffix := key[len(n.label):]
	child, ok := n.children[suffix[0]]
	if !ok {
		return val, false
	}
	v, removed := child.remove(suffix, h, enc)
	if !removed {
		return val, false
	}
	if child.isEmpty() {
		delete(n.children, suffix[0])
	}
	n.compress(h, enc)
	return v, true
}

// compress restores invariants 3 and 4 (spec.md §3) locally after a value or
// child was just removed, per the try_to_compress algorithm of §4.2.4.
func (n *Node[V]) compress(h Hasher, enc Encoder[V]) {
	switch {
	case n.isEmpty():
		n.label = nil
	case n.value == nil && len(n.children) == 1:
		var only *Node[V]
		for _, c := range n.children {
			only = c
		}
		n.label = append(append([]byte(nil), n.label...), only.label...)
		n.value = only.value
		n.children = only.children
	}
	n.mustRecomputeDigest(h, enc)
}

// recomputeDigest implements the digest protocol of spec.md §4.3.
func (n *Node[V]) recomputeDigest(h Hasher, enc Encoder[V]) error {
	if n.isEmpty() {
		n.digest = emptyDigest
		return nil
	}

	labelHash := h.Sum(n.label)

	var valueHash *Digest
	if n.value != nil {
		encoded, err := enc(*n.value)
		if err != nil {
			return &EncodingFailed{Key: append([]byte(nil), n.label...), Err: err}
		}
		vh := h.Sum(encoded)
		valueHash = &vh
	}

	keys := make([]byte, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	childDigests := make([][32]byte, len(keys))
	for i, k := range keys {
		childDigests[i] = n.children[k].digest
	}

	buf := preimage(make([]byte, 0, 32*(2+len(childDigests))), labelHash, valueHash, childDigests)
	n.digest = h.Sum(buf)
	return nil
}

// mustRecomputeDigest recomputes the digest in contexts where the spec
// guarantees it cannot fail (remove/compress). See remove's doc comment.
func (n *Node[V]) mustRecomputeDigest(h Hasher, enc Encoder[V]) {
	if err := n.recomputeDigest(h, enc); err != nil {
		panic(err)
	}
}
