package bench

import (
	"time"

	"github.com/jaiminpan/mtrie/trie"
)

// Run seeds a fresh trie with size sequential keys, then times size
// Insert/Get/Remove/RootDigest calls against it, returning one Samples set
// per operation. It is the harness used by the CLI's "bench" subcommand.
func Run(size int) []Samples {
	tr := trie.New[int](nil, func(v int) ([]byte, error) {
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}, nil
	})

	keys := make([][]byte, size)
	for i := range keys {
		keys[i] = seedKey(i)
		if err := tr.Insert(keys[i], i); err != nil {
			panic(err)
		}
	}

	insertSamples := Samples{Op: "insert", Size: size}
	getSamples := Samples{Op: "get", Size: size}
	digestSamples := Samples{Op: "digest", Size: size}
	removeSamples := Samples{Op: "remove", Size: size}

	for _, key := range keys {
		extra := append(append([]byte(nil), key...), 0xff)
		start := time.Now()
		_ = tr.Insert(extra, -1)
		insertSamples.Durs = append(insertSamples.Durs, time.Since(start))
		tr.Remove(extra)

		start = time.Now()
		tr.Get(key)
		getSamples.Durs = append(getSamples.Durs, time.Since(start))

		start = time.Now()
		tr.RootDigest()
		digestSamples.Durs = append(digestSamples.Durs, time.Since(start))
	}

	for _, key := range keys {
		start := time.Now()
		tr.Remove(key)
		removeSamples.Durs = append(removeSamples.Durs, time.Since(start))
	}

	return []Samples{insertSamples, getSamples, digestSamples, removeSamples}
}

func seedKey(i int) []byte {
	return []byte{byte(i), byte(i >> 8), byte(i >> 16), byte(i >> 24), 'k', 'e', 'y'}
}
