package memtable

import "time"

// Timestamp is microseconds since the Unix epoch. The on-disk format
// reserves 128 bits for it (see wal.Frame); Go has no native 128-bit
// integer, and no library in use anywhere in this module's dependency
// graph provides one, so the value lives in a uint64 at runtime (good
// until the year 586524) and is zero-extended to 16 bytes on the wire.
type Timestamp uint64

// Now returns the current wall-clock time as a Timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UnixMicro())
}
