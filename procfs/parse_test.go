package procfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pst/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStat(t *testing.T) {
	line := statLine(42, "my (weird) proc", 7, 34819, 250, 150, 5000)

	st, err := ParseStat([]byte(line))
	require.NoError(t, err)

	assert.Equal(t, process.ProcessID(7), st.PPID)
	assert.Equal(t, uint64(34819), st.TTYNr)
	assert.Equal(t, uint64(250), st.UTime)
	assert.Equal(t, uint64(150), st.STime)
	assert.Equal(t, uint64(5000), st.StartTime)
}

func TestParseStat_DerivedTimes(t *testing.T) {
	st := Stat{UTime: 250, STime: 150, StartTime: 5000}

	assert.Equal(t, int64(4000), st.CPUTimeMillis(100))
	assert.Equal(t, int64(1000*1000-50000), st.AgeMillis(1000, 100))
}

func TestParseStat_Malformed(t *testing.T) {
	_, err := ParseStat([]byte("42 no-paren S 1"))
	assert.Error(t, err)

	_, err = ParseStat([]byte("42 (x) S notanumber"))
	assert.Error(t, err)

	st, err := ParseStat([]byte("42 (x) S 2 0 0"))
	assert.Error(t, err)
	assert.Equal(t, process.KernelThreadAnchor, st.PPID, "ppid is parsed before the remaining fields")
}

func TestTTYResolvers(t *testing.T) {
	sys := t.TempDir()
	writeFile(t, filepath.Join(sys, "dev", "char", "5:1", "uevent"), "MAJOR=5\nMINOR=1\nDEVNAME=console\n")

	rs := DefaultTTYResolvers(sys)

	assert.Equal(t, "?", rs.Name(0))
	assert.Equal(t, "tty1", rs.Name(4<<8|1))
	assert.Equal(t, "pts/3", rs.Name(136<<8|3))
	assert.Equal(t, "console", rs.Name(5<<8|1))
	assert.Equal(t, "200.7", rs.Name(200<<8|7))
}

func TestTTYResolvers_LargeMinor(t *testing.T) {
	// minor 300 spills into bits 20 and up of tty_nr
	dev := uint64(136<<8 | (300 & 0xff) | (300&^0xff)<<12)

	assert.Equal(t, "pts/300", TTYResolvers{KnownMajors}.Name(dev))
}

func TestParseStatusUID(t *testing.T) {
	status := "Name:\tbash\nUmask:\t0022\nUid:\t1000\t0\t0\t0\nGid:\t100\t100\t100\t100\n"

	uid, err := ParseStatusUID(strings.NewReader(status))
	require.NoError(t, err)
	assert.Equal(t, 1000, uid)

	uid, err = ParseStatusUID(strings.NewReader("Name:\tbash\n"))
	require.NoError(t, err)
	assert.Equal(t, process.UnknownUID, uid)
}

func TestCleanCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo\x00--bar\x00", "foo --bar"},
		{"kworker/0:1\n", "kworker/0:1"},
		{"\x00 a\t\tb  c \x00\x00", "a b c"},
		{"", ""},
		{"one\ntwo", "one"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanCommand([]byte(tt.in)), "input %q", tt.in)
	}
}

func TestParseSmaps(t *testing.T) {
	smaps := strings.Join([]string{
		"00400000-0040b000 r-xp 00000000 08:01 123 /bin/cat",
		"Size:                 44 kB",
		"Rss:                  40 kB",
		"Pss:                  20 kB",
		"Swap:                  8 kB",
		"SwapPss:               4 kB",
		"0060a000-0060b000 rw-p 0000a000 08:01 123 /bin/cat",
		"Rss:                  12 kB",
		"Pss:                  12 kB",
		"Swap:                  0 kB",
		"SwapPss:               0 kB",
	}, "\n")

	ram, swap, err := ParseSmaps(strings.NewReader(smaps), SmapsPss, SmapsSwapPss)
	require.NoError(t, err)
	assert.Equal(t, int64(32*1024), ram)
	assert.Equal(t, int64(4*1024), swap)

	ram, swap, err = ParseSmaps(strings.NewReader(smaps), SmapsRss, SmapsSwap)
	require.NoError(t, err)
	assert.Equal(t, int64(52*1024), ram)
	assert.Equal(t, int64(8*1024), swap)
}

func TestParseIO(t *testing.T) {
	data := "rchar: 9999\nwchar: 8888\nsyscr: 1\nsyscw: 2\nread_bytes: 4096\nwrite_bytes: 8192\ncancelled_write_bytes: 0\n"

	c, err := ParseIO(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, IOCounters{Read: 4096, Write: 8192}, c)

	c.Add(IOCounters{Read: 1, Write: 2})
	assert.Equal(t, IOCounters{Read: 4097, Write: 8194}, c)
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"20", "1", "3", "self", "0", "9x"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0o755))
	}
	writeFile(t, filepath.Join(root, "5"), "not a dir")

	var ids []process.ProcessID
	err := ScanDir(root, func(id process.ProcessID) {
		ids = append(ids, id)
	})

	require.NoError(t, err)
	assert.Equal(t, []process.ProcessID{1, 3, 20}, ids)
}

func TestScanDir_Missing(t *testing.T) {
	err := ScanDir(filepath.Join(t.TempDir(), "nope"), func(process.ProcessID) {})

	require.Error(t, err)
	assert.True(t, IsGone(err))
}
