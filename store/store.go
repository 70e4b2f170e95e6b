// Package store provides Store, the only type clients of this module talk
// to: it binds the Memtable, the active WAL and the recovery coordinator
// behind get/set/delete.
package store

import (
	"errors"
	"fmt"
	"sync"

	"kvwal/memtable"
	"kvwal/recovery"
	"kvwal/wal"
)

var ErrClosed = errors.New("store: closed")

// Entry is the key/value/timestamp triple returned by Get.
type Entry struct {
	Key       []byte
	Value     []byte
	Timestamp memtable.Timestamp
}

// Options configures a Store. It is the only place this package reads
// caller configuration from; file-based configuration lives outside it.
type Options struct {
	// Dir is the directory holding this store's WAL files. Required.
	Dir string
}

// Store serializes all operations on its own in-process state with a
// mutex. It does not coordinate across processes.
type Store struct {
	mu     sync.Mutex
	closed bool

	mem *memtable.Memtable
	w   *wal.Writer
}

// Open recovers dir's prior WAL files into a fresh Memtable and active WAL,
// then returns a Store ready to accept operations.
func Open(opts Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, errors.New("store: Options.Dir is required")
	}

	result, err := recovery.Recover(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	return &Store{mem: result.Memtable, w: result.Writer}, nil
}

// Get returns the live value for key, or ok=false if the key was never
// written or was last written as a deletion.
func (s *Store) Get(key []byte) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Entry{}, false, ErrClosed
	}

	rec, ok := s.mem.Fetch(key)
	if !ok || rec.IsDeleted {
		return Entry{}, false, nil
	}
	return Entry{Key: rec.Key, Value: rec.Value, Timestamp: rec.Timestamp}, true, nil
}

// Set durably records an insertion and then applies it to the Memtable. A
// WAL failure aborts the operation before the Memtable is touched — the
// on-disk log is authoritative.
func (s *Store) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ts := memtable.Now()
	if err := s.w.RecordInsertion(key, value, ts); err != nil {
		return fmt.Errorf("store: set: %w", err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("store: set: %w", err)
	}
	s.mem.Insert(key, value, ts)
	return nil
}

// Delete durably records a tombstone and then applies it to the Memtable.
// Same error discipline as Set.
func (s *Store) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ts := memtable.Now()
	if err := s.w.RecordRemoval(key, ts); err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	s.mem.Remove(key, ts)
	return nil
}

// RecordCount reports the Memtable's record count, live and tombstone.
func (s *Store) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.RecordCount()
}

// CurrentSize reports the Memtable's running byte-size estimate.
func (s *Store) CurrentSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.CurrentSize()
}

// Close flushes and releases the active WAL file. A Store that is simply
// dropped without Close leaves its last flushed state durable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.w.Close()
}
