package procfs

import (
	"bytes"
	"strings"
)

// CleanCommand turns a cmdline or comm record into a display string: only
// the first line is used, NUL and TAB separators become spaces, runs of
// spaces collapse to one and the ends are trimmed.
func CleanCommand(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}

	var b strings.Builder
	b.Grow(len(data))

	space := false
	for _, c := range data {
		if c == 0 || c == '\t' || c == ' ' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteByte(c)
	}

	return b.String()
}
