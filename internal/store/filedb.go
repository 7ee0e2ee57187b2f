package store

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/pkg/errors"
)

// FileDB is a KeyValueStore backed by a single gob-encoded flat file. It
// loads entirely into memory on Open and is rewritten in full, in place, on
// Flush (the file is truncated first, not replaced atomically); there is no
// write-ahead log or incremental append, which is
// adequate for the CLI's dump/load use case and keeps the store's own
// implementation out of the trie's persistence Non-goal (spec.md §1).
type FileDB struct {
	*MemDB
	path string
}

type fileRecord struct {
	Key   []byte
	Value []byte
}

// OpenFileDB loads path into memory, or starts empty if it does not exist.
func OpenFileDB(path string) (*FileDB, error) {
	db := &FileDB{MemDB: NewMemDB(), path: path}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return db, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", path)
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	for {
		var rec fileRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrapf(err, "store: decode %s", path)
		}
		if err := db.Put(rec.Key, rec.Value); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Flush writes every key-value pair currently in the store to FileDB's
// backing path, overwriting it.
func (db *FileDB) Flush() error {
	f, err := os.Create(db.path)
	if err != nil {
		return errors.Wrapf(err, "store: create %s", db.path)
	}
	defer f.Close()

	enc := gob.NewEncoder(f)
	for _, key := range db.Keys() {
		value, err := db.Get(key)
		if err != nil {
			return err
		}
		if err := enc.Encode(fileRecord{Key: key, Value: value}); err != nil {
			return errors.Wrapf(err, "store: encode record for key %x", key)
		}
	}
	return nil
}
