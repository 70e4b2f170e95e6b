package wal_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvwal/memtable"
	"kvwal/wal"
)

func TestRecordInsertionRoundTrips(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	w, err := wal.CreateNew(dir)
	require.NoError(t, err)
	require.NoError(t, w.RecordInsertion([]byte("Server"), []byte("nginx"), 42))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := wal.NewReader(w.Path())
	require.NoError(t, err)
	defer r.Close()

	frame, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Server", string(frame.Key))
	assert.Equal(t, "nginx", string(frame.Value))
	assert.Equal(t, memtable.Timestamp(42), frame.Timestamp)
	assert.False(t, frame.Removed)

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordRemovalRoundTrips(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	w, err := wal.CreateNew(dir)
	require.NoError(t, err)
	require.NoError(t, w.RecordRemoval([]byte("Server"), 7))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := wal.NewReader(w.Path())
	require.NoError(t, err)
	defer r.Close()

	frame, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Server", string(frame.Key))
	assert.Nil(t, frame.Value)
	assert.True(t, frame.Removed)
	assert.Equal(t, memtable.Timestamp(7), frame.Timestamp)
}

func TestMultipleFramesPreserveOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	w, err := wal.CreateNew(dir)
	require.NoError(t, err)
	entries := []struct {
		key, val string
	}{
		{"Server", "nginx"},
		{"Database", "PostgreSQL"},
		{"API", "GraphQL"},
	}
	for _, e := range entries {
		require.NoError(t, w.RecordInsertion([]byte(e.key), []byte(e.val), 1))
	}
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := wal.NewReader(w.Path())
	require.NoError(t, err)
	defer r.Close()

	for _, e := range entries {
		frame, ok, err := r.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, e.key, string(frame.Key))
		assert.Equal(t, e.val, string(frame.Value))
	}
}

func TestTornTailEndsIterationCleanly(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	w, err := wal.CreateNew(dir)
	require.NoError(t, err)
	require.NoError(t, w.RecordInsertion([]byte("k"), []byte("v"), 1))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	// truncate the file mid-frame by appending a second, incomplete frame
	f, err := os.OpenFile(w.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	var partial [8]byte
	binary.LittleEndian.PutUint64(partial[:], 99)
	_, err = f.Write(partial[:4]) // only half the key_len field
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r, err := wal.NewReader(w.Path())
	require.NoError(t, err)
	defer r.Close()

	_, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok, "torn frame should end iteration without an error")
}

func TestWALFilenameUsesMicrosecondTimestamp(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	w, err := wal.CreateNew(dir)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, filepath.Dir(w.Path()), dir)
	micros, err := wal.ParseMicros(w.Path())
	require.NoError(t, err)
	assert.Positive(t, micros)
}
