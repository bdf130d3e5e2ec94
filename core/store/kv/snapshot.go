package kv

import (
	"github.com/todoledger/todoledger/core/store"
)

// snapshot is an adapter of a database bucket to the store.Snapshot interface.
// It is valid only for the duration of the database transaction that provided
// the bucket, which gives the all-or-nothing semantics of the transaction to
// the snapshot writes.
//
// - implements store.Snapshot
type snapshot struct {
	bucket Bucket
}

// NewSnapshot creates a snapshot backed by the database bucket.
func NewSnapshot(bucket Bucket) store.Snapshot {
	return snapshot{bucket: bucket}
}

// Get implements store.Readable. It returns the value of the key, or nil if it
// is not set.
func (s snapshot) Get(key []byte) ([]byte, error) {
	return s.bucket.Get(key), nil
}

// Set implements store.Writable. It stores the value in the bucket.
func (s snapshot) Set(key, value []byte) error {
	return s.bucket.Set(key, value)
}

// Delete implements store.Writable. It removes the key from the bucket.
func (s snapshot) Delete(key []byte) error {
	return s.bucket.Delete(key)
}
