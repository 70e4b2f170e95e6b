package wal

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"kvwal/memtable"
)

const extension = "wal"

// NextName returns the filename (not path) a new active WAL should use:
// <micros>.wal, where micros is the current wall-clock microsecond
// timestamp.
func NextName() string {
	return fmt.Sprintf("%d.%s", uint64(memtable.Now()), extension)
}

// ParseMicros extracts the microsecond timestamp encoded in a WAL filename,
// e.g. "100.wal" -> 100. Filenames are zero-unpadded decimal, so they must
// be compared numerically rather than lexicographically: "9.wal" sorts
// after "10.wal" as strings but must sort before it as logs.
func ParseMicros(path string) (uint64, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, "."+extension)
	if name == base {
		return 0, fmt.Errorf("wal: %q has no .%s extension", path, extension)
	}
	return strconv.ParseUint(name, 10, 64)
}
