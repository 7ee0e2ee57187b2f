package trie

import "errors"

// KeyAlreadyPresent is returned by Insert when the key is already bound to a
// value. The trie is left unchanged by the failed call.
var KeyAlreadyPresent = errors.New("trie: key already present")

// EncodingFailed wraps an error returned by a value Encoder, either from
// Insert's up-front encoding of the new value or while computing a node's
// digest. The digest of the affected node must not be cached when this
// error is returned.
type EncodingFailed struct {
	Key []byte
	Err error
}

func (e *EncodingFailed) Error() string {
	return "trie: encoding value for key " + string(e.Key) + " failed: " + e.Err.Error()
}

func (e *EncodingFailed) Unwrap() error { return e.Err }
