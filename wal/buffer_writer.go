package wal

import (
	"bytes"

	"kvwal/memtable"
)

// BufferWriter re-records frames into an in-memory buffer instead of a
// file. recovery uses it to assemble the compacted active WAL's contents
// before installing them atomically under their final name.
type BufferWriter struct {
	buf *bytes.Buffer
}

// NewBufferWriter wraps buf for frame-at-a-time appends.
func NewBufferWriter(buf *bytes.Buffer) *BufferWriter {
	return &BufferWriter{buf: buf}
}

// RecordInsertion appends one non-deletion frame to the buffer.
func (w *BufferWriter) RecordInsertion(key, value []byte, ts memtable.Timestamp) error {
	return encodeInsertion(w.buf, key, value, ts)
}

// RecordRemoval appends one deletion frame to the buffer.
func (w *BufferWriter) RecordRemoval(key []byte, ts memtable.Timestamp) error {
	return encodeRemoval(w.buf, key, ts)
}
