package procfs

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Keys summed from smaps. PSS splits shared pages between the processes
// mapping them, RSS counts them in full for each.
const (
	SmapsPss     = "Pss:"
	SmapsSwapPss = "SwapPss:"
	SmapsRss     = "Rss:"
	SmapsSwap    = "Swap:"
)

// ParseSmaps sums the ramKey and swapKey lines of an smaps or smaps_rollup
// record. Values in the record are kB, the result is bytes.
func ParseSmaps(r io.Reader, ramKey, swapKey string) (ram, swap int64, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		var dst *int64
		switch fields[0] {
		case ramKey:
			dst = &ram
		case swapKey:
			dst = &swap
		default:
			continue
		}

		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}
		*dst += kb
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}

	return ram * 1024, swap * 1024, nil
}
