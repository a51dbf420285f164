package procfs

import (
	"os"
	"sort"
	"strconv"

	"pst/process"
)

// ScanDir calls fn for every numeric entry of dir, such as the pids under
// /proc or the tids under /proc/<pid>/task. Ids are passed in ascending
// order so the result does not depend on the order of the directory
// listing. Non-numeric entries and ids <= 0 are skipped.
//
// The error from opening dir is returned as-is. Scanning /proc treats it as
// fatal, scanning a task directory degrades it to a failure of that one
// record.
func ScanDir(dir string, fn func(id process.ProcessID)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if name[0] < '0' || name[0] > '9' {
			continue
		}

		id, err := strconv.Atoi(name)
		if err != nil || id <= 0 {
			continue // not a PID dir
		}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	for _, id := range ids {
		fn(process.ProcessID(id))
	}

	return nil
}
