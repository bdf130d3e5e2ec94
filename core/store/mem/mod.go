// Package mem implements an in-memory key/value snapshot.
//
// It is mainly used by tests and by dry runs of the execution service, where
// the updates of a transaction must be discarded if the transaction is
// rejected.
package mem

import "github.com/todoledger/todoledger/core/store"

// Snapshot is an in-memory implementation of a store snapshot. It saves the
// updates in an internal map and only keeps the updates of the current
// snapshot. When reading, it looks up the parent snapshot if the key is not
// found.
//
// - implements store.Snapshot
type Snapshot struct {
	parent  *Snapshot
	values  map[string][]byte
	deleted map[string]struct{}
}

// NewSnapshot creates a new empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		values:  make(map[string][]byte),
		deleted: make(map[string]struct{}),
	}
}

// Get implements store.Readable. It returns the value of the key, or nil if it
// is not set.
func (s *Snapshot) Get(key []byte) ([]byte, error) {
	str := string(key)

	if _, ok := s.deleted[str]; ok {
		return nil, nil
	}

	val, ok := s.values[str]
	if ok {
		return val, nil
	}

	if s.parent == nil {
		return nil, nil
	}

	return s.parent.Get(key)
}

// Set implements store.Writable. It stores the value to the snapshot.
func (s *Snapshot) Set(key, value []byte) error {
	str := string(key)

	delete(s.deleted, str)
	s.values[str] = value

	return nil
}

// Delete implements store.Writable. It removes the key from the snapshot.
func (s *Snapshot) Delete(key []byte) error {
	str := string(key)

	delete(s.values, str)
	s.deleted[str] = struct{}{}

	return nil
}

// Stage runs the callback on a child snapshot and merges the updates back only
// if the callback succeeds, so that a failed callback leaves the snapshot
// untouched.
func (s *Snapshot) Stage(fn func(store.Snapshot) error) error {
	child := &Snapshot{
		parent:  s,
		values:  make(map[string][]byte),
		deleted: make(map[string]struct{}),
	}

	err := fn(child)
	if err != nil {
		return err
	}

	for key, value := range child.values {
		delete(s.deleted, key)
		s.values[key] = value
	}

	for key := range child.deleted {
		delete(s.values, key)
		s.deleted[key] = struct{}{}
	}

	return nil
}
