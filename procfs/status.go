package procfs

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"pst/process"
)

// ParseStatusUID returns the real uid from the "Uid:" line of a status
// record, or process.UnknownUID when there is no such line.
func ParseStatusUID(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "Uid:" {
			continue
		}

		uid, err := strconv.Atoi(fields[1])
		if err != nil {
			return process.UnknownUID, nil
		}
		return uid, nil
	}

	return process.UnknownUID, scanner.Err()
}
