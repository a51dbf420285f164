package process

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	s := NewSnapshot()
	for _, rec := range []*Record{
		newProc(1, 0, "/sbin/init splash"),
		newProc(100, 1, "foobar --x"),
		newProc(101, 1, "foo --x"),
		newProc(102, 101, "bash -c sleep 100"),
		newProc(500, 1, "pst foo"),
	} {
		require.NoError(t, s.Insert(rec))
	}
	return s
}

func TestMatch_Pid(t *testing.T) {
	s := matchSnapshot(t)

	targets, misses := s.Match([]string{"101", "1"}, MatchOptions{})

	assert.Equal(t, []ProcessID{1, 101}, targets)
	assert.Empty(t, misses)
}

func TestMatch_PidMissReasons(t *testing.T) {
	s := matchSnapshot(t)
	s.MarkKernelSkipped(2)
	s.SetError(7, errors.New("Failed to read /proc/7/stat: permission denied"))

	targets, misses := s.Match([]string{"2", "7", "9999"}, MatchOptions{})

	assert.Empty(t, targets)
	require.Len(t, misses, 3)
	assert.Equal(t, MissKernelThread, misses[0].Reason)
	assert.Equal(t, "Ignoring pid 2", misses[0].String())
	assert.Equal(t, MissReadFailed, misses[1].Reason)
	assert.Equal(t, "Pid 7: Failed to read /proc/7/stat: permission denied", misses[1].String())
	assert.Equal(t, MissNotFound, misses[2].Reason)
	assert.Equal(t, "Pid 9999 not found", misses[2].String())
}

func TestMatch_CommandSubstring(t *testing.T) {
	s := matchSnapshot(t)

	targets, misses := s.Match([]string{"foo"}, MatchOptions{Self: 500})

	assert.Equal(t, []ProcessID{100, 101}, targets)
	assert.Empty(t, misses)
}

func TestMatch_SelfIsExcluded(t *testing.T) {
	s := matchSnapshot(t)

	targets, _ := s.Match([]string{"pst"}, MatchOptions{Self: 500})
	assert.Empty(t, targets)

	targets, _ = s.Match([]string{"pst"}, MatchOptions{Self: 9})
	assert.Equal(t, []ProcessID{500}, targets)
}

func TestMatch_ExeOnly(t *testing.T) {
	s := matchSnapshot(t)

	targets, misses := s.Match([]string{"foo"}, MatchOptions{ExeOnly: true, Self: 500})

	assert.Equal(t, []ProcessID{101}, targets)
	assert.Empty(t, misses)

	targets, misses = s.Match([]string{"--x"}, MatchOptions{ExeOnly: true, Self: 500})
	assert.Empty(t, targets)
	require.Len(t, misses, 1)
	assert.Equal(t, "No match for process name: --x", misses[0].String())
}

func TestMatch_ExeOnlyNeedsWholeName(t *testing.T) {
	s := matchSnapshot(t)

	targets, misses := s.Match([]string{"fo"}, MatchOptions{ExeOnly: true, Self: 500})
	assert.Empty(t, targets, "a prefix of the executable is not a match")
	require.Len(t, misses, 1)

	targets, _ = s.Match([]string{"init"}, MatchOptions{ExeOnly: true, Self: 500})
	assert.Equal(t, []ProcessID{1}, targets, "base name of an absolute path")

	targets, _ = s.Match([]string{"/sbin/init"}, MatchOptions{ExeOnly: true, Self: 500})
	assert.Equal(t, []ProcessID{1}, targets)

	targets, _ = s.Match([]string{"splash"}, MatchOptions{ExeOnly: true, Self: 500})
	assert.Empty(t, targets)
}

func TestCommandMatches(t *testing.T) {
	assert.True(t, commandMatches("foobar --x", "foo", false))
	assert.False(t, commandMatches("foobar --x", "foo", true))
	assert.True(t, commandMatches("foo --x", "foo", true))
	assert.True(t, commandMatches("foo", "foo", true))
	assert.False(t, commandMatches("", "foo", true))
}

func TestMatch_CaseSensitive(t *testing.T) {
	s := matchSnapshot(t)

	targets, misses := s.Match([]string{"FOO"}, MatchOptions{Self: 500})

	assert.Empty(t, targets)
	assert.Len(t, misses, 1)
}

func TestMatch_NoPidTreatsDigitsAsCommand(t *testing.T) {
	s := matchSnapshot(t)

	targets, _ := s.Match([]string{"100"}, MatchOptions{NoPID: true, Self: 500})

	assert.Equal(t, []ProcessID{102}, targets)
}

func TestMatch_Idempotent(t *testing.T) {
	s := matchSnapshot(t)
	tokens := []string{"foo", "1", "sleep"}

	first, _ := s.Match(tokens, MatchOptions{Self: 500})
	second, _ := s.Match(tokens, MatchOptions{Self: 500})

	assert.Equal(t, first, second)
	assert.Equal(t, []ProcessID{1, 100, 101, 102}, first)
	assert.Equal(t, 5, s.Len())
}
