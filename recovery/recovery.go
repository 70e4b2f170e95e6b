// Package recovery rebuilds the Memtable from prior WAL files on Store
// startup and collapses them into one fresh active log.
package recovery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/natefinch/atomic"

	"kvwal/memtable"
	"kvwal/wal"
)

// Result is what Recover hands back to the Store constructor: the rebuilt
// Memtable and a writer already appending to the new active WAL.
type Result struct {
	Memtable *memtable.Memtable
	Writer   *wal.Writer
}

// Recover enumerates every *.wal file in dir, replays them in chronological
// (numeric filename) order into a new Memtable, re-emits every frame into a
// freshly materialized active WAL, and deletes the consumed files.
//
// The new active WAL is assembled in memory and installed under its final
// name with natefinch/atomic.WriteFile, so a crash during recovery never
// leaves a half-written file visible under the name a future recovery
// would try to open. Old logs are only removed once the new log is fully
// in place.
func Recover(dir string) (*Result, error) {
	paths, err := oldLogPaths(dir)
	if err != nil {
		return nil, fmt.Errorf("recovery: list wal files: %w", err)
	}

	mem := memtable.New()
	var buf bytes.Buffer
	replay := wal.NewBufferWriter(&buf)

	for _, path := range paths {
		if err := replayOne(path, mem, replay); err != nil {
			return nil, fmt.Errorf("recovery: replay %s: %w", path, err)
		}
	}

	name := wal.NextName()
	finalPath := filepath.Join(dir, name)
	if err := atomic.WriteFile(finalPath, bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("recovery: install active wal: %w", err)
	}

	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("recovery: remove old wal %s: %w", path, err)
		}
	}

	activeWriter, err := wal.OpenExisting(finalPath)
	if err != nil {
		return nil, fmt.Errorf("recovery: open new active wal: %w", err)
	}

	return &Result{Memtable: mem, Writer: activeWriter}, nil
}

// replayOne applies every frame of the log at path to mem and re-records it
// into replay. A log that cannot be opened for reading is skipped — its
// frames are lost but recovery continues over the remaining files.
func replayOne(path string, mem *memtable.Memtable, replay *wal.BufferWriter) error {
	r, err := wal.NewReader(path)
	if err != nil {
		return nil
	}
	defer r.Close()

	for {
		frame, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if frame.Removed {
			mem.Remove(frame.Key, frame.Timestamp)
			if err := replay.RecordRemoval(frame.Key, frame.Timestamp); err != nil {
				return err
			}
		} else {
			mem.Insert(frame.Key, frame.Value, frame.Timestamp)
			if err := replay.RecordInsertion(frame.Key, frame.Value, frame.Timestamp); err != nil {
				return err
			}
		}
	}
}

// oldLogPaths returns every *.wal file in dir whose base name is a decimal
// number, sorted numerically by the microsecond timestamp encoded in its
// filename; other *.wal files are skipped. A lexical sort would misorder
// "9.wal" after "10.wal".
func oldLogPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type logFile struct {
		path   string
		micros uint64
	}
	var logs []logFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) != ".wal" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		micros, err := wal.ParseMicros(path)
		if err != nil {
			continue
		}
		logs = append(logs, logFile{path: path, micros: micros})
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].micros < logs[j].micros })

	paths := make([]string, len(logs))
	for i, l := range logs {
		paths[i] = l.path
	}
	return paths, nil
}
