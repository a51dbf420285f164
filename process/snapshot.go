package process

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateProcess is returned by Insert when a pid is already present.
// Pids come from a single directory listing, so this is a broken invariant.
var ErrDuplicateProcess = errors.New("duplicate process id")

// Snapshot is the state of one pst run: the records collected from /proc
// indexed by id and by parent, plus what is known about records that were
// not collected. It is written by the collector and then only read.
// A Snapshot is not safe for concurrent use.
type Snapshot struct {
	byID          map[ProcessID]*Record
	byParent      map[ProcessID][]*Record
	errors        map[ProcessID]error
	kernelSkipped map[ProcessID]struct{}
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		byID:          make(map[ProcessID]*Record),
		byParent:      make(map[ProcessID][]*Record),
		errors:        make(map[ProcessID]error),
		kernelSkipped: make(map[ProcessID]struct{}),
	}
}

// Insert adds a fully parsed process to both indices. Children keep the
// order in which they were inserted.
func (s *Snapshot) Insert(rec *Record) error {
	if rec.IsThread() {
		return fmt.Errorf("insert thread %d of %d: threads are not part of the tree", rec.TID, rec.PID)
	}
	if rec.Failed {
		return fmt.Errorf("insert %d: record is incomplete", rec.PID)
	}
	if _, exists := s.byID[rec.PID]; exists {
		return fmt.Errorf("insert %d: %w", rec.PID, ErrDuplicateProcess)
	}

	s.byID[rec.PID] = rec
	s.byParent[rec.PPID] = append(s.byParent[rec.PPID], rec)
	return nil
}

// Get returns the record for pid, or nil.
func (s *Snapshot) Get(pid ProcessID) *Record {
	return s.byID[pid]
}

// Children returns the children of pid in discovery order.
func (s *Snapshot) Children(pid ProcessID) []*Record {
	return s.byParent[pid]
}

// HasChildren reports whether any collected process has pid as parent.
func (s *Snapshot) HasChildren(pid ProcessID) bool {
	return len(s.byParent[pid]) > 0
}

// Len returns the number of collected processes.
func (s *Snapshot) Len() int {
	return len(s.byID)
}

// Empty reports whether no process has been collected.
func (s *Snapshot) Empty() bool {
	return len(s.byParent) == 0
}

// Parents returns every parent id that has at least one child, ascending.
// Some of them (0, or a parent that failed to parse) have no record.
func (s *Snapshot) Parents() []ProcessID {
	return sortedKeys(s.byParent)
}

// PIDs returns the ids of all collected processes, ascending.
func (s *Snapshot) PIDs() []ProcessID {
	return sortedKeys(s.byID)
}

// SetError records why pid could not be collected.
func (s *Snapshot) SetError(pid ProcessID, err error) {
	s.errors[pid] = err
}

// Error returns the recorded collection error for pid, or nil.
func (s *Snapshot) Error(pid ProcessID) error {
	return s.errors[pid]
}

// ErrorCount returns the number of processes with a recorded collection error.
func (s *Snapshot) ErrorCount() int {
	return len(s.errors)
}

// MarkKernelSkipped remembers that pid was left out on purpose.
func (s *Snapshot) MarkKernelSkipped(pid ProcessID) {
	s.kernelSkipped[pid] = struct{}{}
}

// KernelSkipped reports whether pid was left out as a kernel thread.
func (s *Snapshot) KernelSkipped(pid ProcessID) bool {
	_, ok := s.kernelSkipped[pid]
	return ok
}

func sortedKeys[V any](m map[ProcessID]V) []ProcessID {
	keys := make([]ProcessID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
