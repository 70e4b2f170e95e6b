package memtable_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvwal/memtable"
)

func TestInsertOrdersByKey(t *testing.T) {
	t.Parallel()

	m := memtable.New()
	m.Insert([]byte("SDK"), []byte("Software Development Kit Guide"), 10)
	m.Insert([]byte("API"), []byte("REST API Documentation"), 5)
	m.Insert([]byte("CLI"), []byte("Command Line Interface Manual"), 15)

	keys := make([]string, 0, 3)
	for _, r := range m.AllRecords() {
		keys = append(keys, string(r.Key))
	}
	assert.Equal(t, []string{"API", "CLI", "SDK"}, keys)
	assert.Equal(t, 141, m.CurrentSize())
}

func TestInsertOverwritesInPlace(t *testing.T) {
	t.Parallel()

	m := memtable.New()
	m.Insert([]byte("API"), []byte("REST API Documentation"), 5)
	m.Insert([]byte("API"), []byte("Updated REST API Documentation"), 10)

	require.Equal(t, 1, m.RecordCount())
	rec, ok := m.Fetch([]byte("API"))
	require.True(t, ok)
	assert.Equal(t, "Updated REST API Documentation", string(rec.Value))
	assert.Equal(t, memtable.Timestamp(10), rec.Timestamp)
	assert.Equal(t, 50, m.CurrentSize())
}

func TestRemoveExistingLeavesTombstone(t *testing.T) {
	t.Parallel()

	m := memtable.New()
	m.Insert([]byte("API"), []byte("REST API Documentation"), 5)
	m.Remove([]byte("API"), 10)

	rec, ok := m.Fetch([]byte("API"))
	require.True(t, ok)
	assert.True(t, rec.IsDeleted)
	assert.Nil(t, rec.Value)
	assert.Equal(t, 20, m.CurrentSize())
}

func TestRemoveNonexistentInsertsTombstone(t *testing.T) {
	t.Parallel()

	m := memtable.New()
	m.Insert([]byte("API"), []byte("REST API Documentation"), 5)
	m.Remove([]byte("SDK"), 10)

	assert.Equal(t, 2, m.RecordCount())
	assert.Equal(t, 62, m.CurrentSize())

	sdk, ok := m.Fetch([]byte("SDK"))
	require.True(t, ok)
	assert.True(t, sdk.IsDeleted)
}

func TestLiveOverTombstoneAddsFullValueLength(t *testing.T) {
	t.Parallel()

	m := memtable.New()
	m.Remove([]byte("API"), 1)
	require.Equal(t, 20, m.CurrentSize())

	m.Insert([]byte("API"), []byte("REST API Documentation"), 2)
	assert.Equal(t, 42, m.CurrentSize())

	rec, ok := m.Fetch([]byte("API"))
	require.True(t, ok)
	assert.False(t, rec.IsDeleted)
}

func TestAllRecordsOrderedAndImmutableFromCaller(t *testing.T) {
	t.Parallel()

	m := memtable.New()
	key := []byte("K")
	val := []byte("V")
	m.Insert(key, val, 1)

	// mutating the caller's slices after Insert must not affect stored state
	key[0] = 'Z'
	val[0] = 'Z'

	rec, ok := m.Fetch([]byte("K"))
	require.True(t, ok)
	assert.Equal(t, "V", string(rec.Value))

	want := []memtable.Record{{Key: []byte("K"), Value: []byte("V"), Timestamp: 1}}
	if diff := cmp.Diff(want, m.AllRecords(), cmpopts.IgnoreFields(memtable.Record{}, "IsDeleted")); diff != "" {
		t.Fatalf("AllRecords mismatch (-want +got):\n%s", diff)
	}
}
