package wal

import (
	"encoding/binary"
	"io"

	"kvwal/memtable"
)

// deletion flag values written at the position immediately following
// key_len in every frame — this placement is what lets Reader decide
// whether a value_len field follows.
const (
	flagLive      = 0
	flagTombstone = 1
)

// encodeInsertion writes one non-deletion frame:
// u64 key_len | u8 flag=0 | u64 value_len | key | value | u128 timestamp
func encodeInsertion(w io.Writer, key, value []byte, ts memtable.Timestamp) error {
	var hdr [8 + 1 + 8]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(len(key)))
	hdr[8] = flagLive
	binary.LittleEndian.PutUint64(hdr[9:17], uint64(len(value)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(key); err != nil {
		return err
	}
	if _, err := w.Write(value); err != nil {
		return err
	}
	return encodeTimestamp(w, ts)
}

// encodeRemoval writes one deletion frame:
// u64 key_len | u8 flag=1 | key | u128 timestamp
func encodeRemoval(w io.Writer, key []byte, ts memtable.Timestamp) error {
	var hdr [8 + 1]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(len(key)))
	hdr[8] = flagTombstone
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(key); err != nil {
		return err
	}
	return encodeTimestamp(w, ts)
}

func encodeTimestamp(w io.Writer, ts memtable.Timestamp) error {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(ts))
	_, err := w.Write(buf[:])
	return err
}
