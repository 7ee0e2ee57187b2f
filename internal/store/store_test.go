package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaiminpan/mtrie/trie"
)

func encodeInt(v int) ([]byte, error) {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}, nil
}

func decodeInt(b []byte) (int, error) {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16 | int(b[3])<<24, nil
}

func TestDumpAndLoadRoundTrip(t *testing.T) {
	tr := trie.New[int](nil, encodeInt)
	keys := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}
	for i, k := range keys {
		require.NoError(t, tr.Insert(k, i))
	}

	db := NewMemDB()
	require.NoError(t, Dump(tr, keys, encodeInt, db))

	loaded, err := Load[int](db, nil, encodeInt, decodeInt)
	require.NoError(t, err)
	require.True(t, tr.Equal(loaded))

	for i, k := range keys {
		v, ok := loaded.Get(k)
		require.True(t, ok)
		require.Equal(t, i, *v)
	}
}

func TestFileDBRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/dump.gob"

	db, err := OpenFileDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, db.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, db.Flush())

	reopened, err := OpenFileDB(path)
	require.NoError(t, err)
	v, err := reopened.Get([]byte("k1"))
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)
}

func TestMemDBBatch(t *testing.T) {
	db := NewMemDB()
	b := db.NewBatch()
	require.NoError(t, b.Put([]byte("a"), []byte("1")))
	require.NoError(t, b.Put([]byte("b"), []byte("2")))
	require.NoError(t, b.Write())

	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)
}
