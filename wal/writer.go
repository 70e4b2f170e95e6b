package wal

import (
	"bufio"
	"os"
	"path/filepath"

	"kvwal/memtable"
)

// Writer appends length-prefixed binary frames to a single WAL file using a
// buffered writer over an *os.File, with an explicit Flush to make appends
// durable on the caller's schedule.
type Writer struct {
	path string
	file *os.File
	bw   *bufio.Writer
}

// CreateNew opens a brand-new WAL file at <dir>/<micros>.wal, where micros
// is the current wall-clock microsecond timestamp.
func CreateNew(dir string) (*Writer, error) {
	name := filepath.Join(dir, NextName())
	return openForAppend(name)
}

// OpenExisting appends to an already-existing WAL file.
func OpenExisting(path string) (*Writer, error) {
	return openForAppend(path)
}

func openForAppend(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{path: path, file: f, bw: bufio.NewWriter(f)}, nil
}

// Path returns the file path this writer appends to.
func (w *Writer) Path() string {
	return w.path
}

// RecordInsertion appends one non-deletion frame.
func (w *Writer) RecordInsertion(key, value []byte, ts memtable.Timestamp) error {
	return encodeInsertion(w.bw, key, value, ts)
}

// RecordRemoval appends one deletion frame.
func (w *Writer) RecordRemoval(key []byte, ts memtable.Timestamp) error {
	return encodeRemoval(w.bw, key, ts)
}

// Flush drains the write buffer to the underlying file.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
