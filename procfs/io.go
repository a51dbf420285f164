package procfs

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// IOCounters is the storage I/O of a process or thread in bytes
type IOCounters struct {
	Read  int64
	Write int64
}

// Add accumulates another thread's counters.
func (c *IOCounters) Add(o IOCounters) {
	c.Read += o.Read
	c.Write += o.Write
}

// ParseIO reads read_bytes and write_bytes from an io record.
func ParseIO(r io.Reader) (IOCounters, error) {
	var c IOCounters

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		var dst *int64
		switch fields[0] {
		case "read_bytes:":
			dst = &c.Read
		case "write_bytes:":
			dst = &c.Write
		default:
			continue
		}

		if v, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			*dst += v
		}
	}

	return c, scanner.Err()
}
