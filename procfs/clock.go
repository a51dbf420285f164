package procfs

// Clock supplies the values needed to turn stat ticks into durations
type Clock interface {
	// TicksPerSecond is the kernel's USER_HZ
	TicksPerSecond() (int64, error)

	// Uptime is the number of seconds since boot
	Uptime() (int64, error)
}
