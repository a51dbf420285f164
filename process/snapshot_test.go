package process

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProc(pid, ppid ProcessID, cmd string) *Record {
	rec := NewRecord(pid, 0)
	rec.PPID = ppid
	rec.Command = cmd
	return rec
}

func TestSnapshot_InsertAndGet(t *testing.T) {
	s := NewSnapshot()

	require.NoError(t, s.Insert(newProc(1, 0, "init")))
	require.NoError(t, s.Insert(newProc(10, 1, "sshd")))

	got := s.Get(10)
	require.NotNil(t, got)
	assert.Equal(t, "sshd", got.Command)
	assert.Nil(t, s.Get(11))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Empty())
}

func TestSnapshot_InsertDuplicate(t *testing.T) {
	s := NewSnapshot()

	require.NoError(t, s.Insert(newProc(5, 1, "a")))
	err := s.Insert(newProc(5, 1, "b"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateProcess))
	assert.Equal(t, "a", s.Get(5).Command)
	assert.Len(t, s.Children(1), 1)
}

func TestSnapshot_InsertRejectsThreadsAndFailures(t *testing.T) {
	s := NewSnapshot()

	thread := NewRecord(5, 6)
	assert.Error(t, s.Insert(thread))

	failed := newProc(7, 1, "x")
	failed.Failed = true
	assert.Error(t, s.Insert(failed))

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Empty())
}

func TestSnapshot_ChildrenKeepDiscoveryOrder(t *testing.T) {
	s := NewSnapshot()

	for _, pid := range []ProcessID{30, 10, 20} {
		require.NoError(t, s.Insert(newProc(pid, 1, "c")))
	}

	var got []ProcessID
	for _, c := range s.Children(1) {
		got = append(got, c.PID)
	}
	assert.Equal(t, []ProcessID{30, 10, 20}, got)
	assert.True(t, s.HasChildren(1))
	assert.False(t, s.HasChildren(30))
}

func TestSnapshot_ParentsAndPIDsSorted(t *testing.T) {
	s := NewSnapshot()

	require.NoError(t, s.Insert(newProc(300, 20, "c")))
	require.NoError(t, s.Insert(newProc(1, 0, "init")))
	require.NoError(t, s.Insert(newProc(20, 1, "b")))

	assert.Equal(t, []ProcessID{0, 1, 20}, s.Parents())
	assert.Equal(t, []ProcessID{1, 20, 300}, s.PIDs())
}

func TestSnapshot_ErrorsAndKernelSkips(t *testing.T) {
	s := NewSnapshot()

	s.SetError(42, errors.New("permission denied"))
	s.MarkKernelSkipped(2)

	assert.EqualError(t, s.Error(42), "permission denied")
	assert.Nil(t, s.Error(43))
	assert.Equal(t, 1, s.ErrorCount())
	assert.True(t, s.KernelSkipped(2))
	assert.False(t, s.KernelSkipped(3))
}

func TestRecord_Kinds(t *testing.T) {
	assert.True(t, NewRecord(2, 0).IsKernel())
	assert.True(t, newProc(9, KernelThreadAnchor, "kworker").IsKernel())
	assert.False(t, newProc(9, 1, "bash").IsKernel())
	assert.True(t, NewRecord(9, 10).IsThread())
	assert.False(t, NewRecord(9, 0).IsThread())
}
