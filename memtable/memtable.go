package memtable

// Memtable is the ordered, keyed set of Records that reflects the current
// logical state of the store. All operations are safe only when serialized
// by the caller: Memtable itself does no locking.
type Memtable struct {
	sl        *skipList
	totalSize int
}

// New returns an empty Memtable.
func New() *Memtable {
	return &Memtable{sl: newSkipList()}
}

// Insert replaces-or-inserts a live record for key, adjusting CurrentSize by
// the delta between the old and new contribution.
func (m *Memtable) Insert(key, value []byte, ts Timestamp) {
	rec := Record{
		Key:       cloneBytes(key),
		Value:     cloneBytes(value),
		Timestamp: ts,
		IsDeleted: false,
	}
	old, existed := m.sl.upsert(rec)
	if !existed {
		m.totalSize += sizeOf(key, value)
		return
	}
	if old.IsDeleted {
		m.totalSize += len(value)
	} else if len(value) < len(old.Value) {
		m.totalSize -= len(old.Value) - len(value)
	} else {
		m.totalSize += len(value) - len(old.Value)
	}
}

// Remove replaces-or-inserts a tombstone for key.
func (m *Memtable) Remove(key []byte, ts Timestamp) {
	rec := Record{
		Key:       cloneBytes(key),
		Timestamp: ts,
		IsDeleted: true,
	}
	old, existed := m.sl.upsert(rec)
	if !existed {
		m.totalSize += sizeOf(key, nil)
		return
	}
	if !old.IsDeleted {
		m.totalSize -= len(old.Value)
	}
}

// Fetch returns the record stored for key — live or tombstone — and whether
// one exists at all.
func (m *Memtable) Fetch(key []byte) (Record, bool) {
	rec, ok := m.sl.get(key)
	if !ok {
		return Record{}, false
	}
	rec.Key = cloneBytes(rec.Key)
	rec.Value = cloneBytes(rec.Value)
	return rec, true
}

// RecordCount returns the number of records (live and tombstone) held.
func (m *Memtable) RecordCount() int {
	return m.sl.len()
}

// CurrentSize returns the running byte-size estimate.
func (m *Memtable) CurrentSize() int {
	return m.totalSize
}

// AllRecords returns every record in ascending key order. Used by a future
// flush-to-disk path, not implemented here.
func (m *Memtable) AllRecords() []Record {
	return m.sl.ordered()
}
