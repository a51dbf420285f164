//go:build linux

package procfs

import (
	"fmt"

	"github.com/tklauser/go-sysconf"
	"golang.org/x/sys/unix"
)

// SystemClock reads the running kernel
type SystemClock struct{}

func (SystemClock) TicksPerSecond() (int64, error) {
	ticks, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, fmt.Errorf("failed to get SC_CLK_TCK: %w", err)
	}
	if ticks <= 0 {
		return 0, fmt.Errorf("failed to get SC_CLK_TCK: invalid value %d", ticks)
	}
	return ticks, nil
}

func (SystemClock) Uptime() (int64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("failed to get sysinfo: %w", err)
	}
	return int64(info.Uptime), nil
}
