package procfs

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"pst/process"
)

var errMalformedStat = errors.New("malformed stat")

// Stat holds the fields of /proc/<pid>/stat that pst uses
type Stat struct {
	PPID      process.ProcessID // field 4
	TTYNr     uint64            // field 7
	UTime     uint64            // field 14, clock ticks
	STime     uint64            // field 15, clock ticks
	StartTime uint64            // field 22, clock ticks after boot
}

// Positions in the fields that follow the comm field, which is field 2.
const (
	statPPID      = 4 - 3
	statTTYNr     = 7 - 3
	statUTime     = 14 - 3
	statSTime     = 15 - 3
	statStartTime = 22 - 3
)

// ParseStat parses a stat record. The comm field may contain spaces and
// parentheses, so splitting starts after the last ')'. PPID is filled in
// before the remaining fields are checked, which lets callers drop kernel
// threads even when the rest of the record is short.
func ParseStat(data []byte) (Stat, error) {
	var st Stat

	end := bytes.LastIndexByte(data, ')')
	if end < 0 {
		return st, fmt.Errorf("%w: no comm field", errMalformedStat)
	}
	fields := bytes.Fields(data[end+1:])

	if len(fields) <= statPPID {
		return st, fmt.Errorf("%w: missing ppid", errMalformedStat)
	}
	ppid, err := strconv.Atoi(string(fields[statPPID]))
	if err != nil {
		return st, fmt.Errorf("%w: ppid: %v", errMalformedStat, err)
	}
	st.PPID = process.ProcessID(ppid)

	if len(fields) <= statStartTime {
		return st, fmt.Errorf("%w: %d fields", errMalformedStat, len(fields)+2)
	}

	// tty_nr is a signed int in the kernel's format
	tty, err := strconv.ParseInt(string(fields[statTTYNr]), 10, 64)
	if err != nil {
		return st, fmt.Errorf("%w: tty_nr: %v", errMalformedStat, err)
	}
	st.TTYNr = uint64(uint32(tty))

	for _, f := range []struct {
		idx int
		dst *uint64
	}{
		{statUTime, &st.UTime},
		{statSTime, &st.STime},
		{statStartTime, &st.StartTime},
	} {
		v, err := strconv.ParseUint(string(fields[f.idx]), 10, 64)
		if err != nil {
			return st, fmt.Errorf("%w: field %d: %v", errMalformedStat, f.idx+3, err)
		}
		*f.dst = v
	}

	return st, nil
}

// CPUTimeMillis converts utime+stime to milliseconds.
func (st Stat) CPUTimeMillis(ticksPerSecond int64) int64 {
	return 1000 * int64(st.UTime+st.STime) / ticksPerSecond
}

// AgeMillis returns how long ago the process started, given the system uptime in seconds.
func (st Stat) AgeMillis(uptimeSeconds, ticksPerSecond int64) int64 {
	return 1000*uptimeSeconds - 1000*int64(st.StartTime)/ticksPerSecond
}
