package procfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"pst/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Options selects what the collector reads. Records that are not needed
// for any shown column are never opened.
type Options struct {
	Root    string // Mount point of procfs, "/proc" by default
	SysRoot string // Mount point of sysfs, "/sys" by default

	ShowKernel bool // Keep kthreadd and its children

	TTY     bool
	UID     bool
	Command bool
	Memory  bool // RAM or swap column
	CPU     bool
	Age     bool
	IO      bool

	RSS     bool // Sum Rss/Swap instead of Pss/SwapPss
	TotalIO bool // Read <pid>/io, which includes dead threads and reaped children

	Verbose bool // Log every read failure as it happens
}

// Collector reads processes from procfs into a snapshot
type Collector struct {
	opts   Options
	ticks  int64
	uptime int64
	ttys   TTYResolvers
	log    *logger.Logger
}

// NewCollector prepares a collector. Clock values are read once so every
// record in a snapshot is measured against the same uptime.
func NewCollector(opts Options, clock Clock) (*Collector, error) {
	if opts.Root == "" {
		opts.Root = "/proc"
	}
	if opts.SysRoot == "" {
		opts.SysRoot = "/sys"
	}

	c := &Collector{
		opts: opts,
		ttys: DefaultTTYResolvers(opts.SysRoot),
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "procfs")),
	}

	ticks, err := clock.TicksPerSecond()
	if err != nil {
		return nil, err
	}
	c.ticks = ticks

	if opts.CPU || opts.Age {
		uptime, err := clock.Uptime()
		if err != nil {
			return nil, err
		}
		c.uptime = uptime
	}

	return c, nil
}

// SetVerbose switches logging of individual read failures.
func (c *Collector) SetVerbose(verbose bool) {
	c.opts.Verbose = verbose
}

// Collect scans the procfs root and inserts every readable process into snap.
// Only an unreadable root or a duplicate pid are returned as errors.
func (c *Collector) Collect(snap *process.Snapshot) error {
	var insertErr error

	err := ScanDir(c.opts.Root, func(pid process.ProcessID) {
		if insertErr != nil {
			return
		}

		rec, skipped := c.read(pid, 0, snap)
		if skipped {
			snap.MarkKernelSkipped(pid)
			return
		}
		if rec.Failed {
			return
		}

		if err := snap.Insert(rec); err != nil {
			insertErr = fmt.Errorf("failed to build proc map: %w", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.opts.Root, err)
	}
	if insertErr != nil {
		return insertErr
	}

	if c.opts.Verbose {
		c.log.Infoln("Collected", snap.Len(), "processes,", snap.ErrorCount(), "failed")
	}

	return nil
}

// Threads reads the live threads of pid. Threads that cannot be read are
// left out. The result is never part of a snapshot. An unreadable task
// directory is returned as a *ReadError unless the process has exited.
func (c *Collector) Threads(pid process.ProcessID) ([]*process.Record, error) {
	var threads []*process.Record

	taskDir := c.path(pid, 0, "task")
	err := ScanDir(taskDir, func(tid process.ProcessID) {
		rec, _ := c.read(pid, tid, nil)
		if !rec.Failed {
			threads = append(threads, rec)
		}
	})
	if err != nil && !IsGone(err) {
		return threads, newReadError(taskDir, err)
	}

	return threads, nil
}

// read fills a record for pid, or for thread tid of pid. skipped is true
// when the process is a kernel thread that should be hidden.
func (c *Collector) read(pid, tid process.ProcessID, snap *process.Snapshot) (rec *process.Record, skipped bool) {
	if !c.opts.ShowKernel && tid == 0 && pid == process.KernelThreadAnchor {
		return nil, true
	}

	rec = process.NewRecord(pid, tid)

	c.readStat(rec, snap)
	if !c.opts.ShowKernel && tid == 0 && rec.PPID == process.KernelThreadAnchor {
		return rec, true
	}

	c.readStatus(rec, snap)
	c.readCommand(rec, snap)
	if tid == 0 {
		c.readMemory(rec, snap)
	}
	c.readIO(rec, snap)

	return rec, false
}

func (c *Collector) readStat(rec *process.Record, snap *process.Snapshot) {
	path := c.path(rec.PID, rec.TID, "stat")

	data, err := os.ReadFile(path)
	if err != nil {
		c.fail(rec, path, err, snap)
		return
	}

	st, err := ParseStat(data)
	rec.PPID = st.PPID
	if !c.opts.ShowKernel && rec.TID == 0 && st.PPID == process.KernelThreadAnchor {
		return
	}
	if err != nil {
		c.fail(rec, path, err, snap)
		return
	}

	if c.opts.TTY {
		rec.TTY = c.ttys.Name(st.TTYNr)
	}
	if c.opts.CPU {
		rec.CPUTime = st.CPUTimeMillis(c.ticks)
	}
	if c.opts.CPU || c.opts.Age {
		rec.Age = st.AgeMillis(c.uptime, c.ticks)
	}
}

func (c *Collector) readStatus(rec *process.Record, snap *process.Snapshot) {
	if rec.Failed || !c.opts.UID {
		return
	}

	c.withFile(rec, c.path(rec.PID, rec.TID, "status"), snap, func(r io.Reader) error {
		uid, err := ParseStatusUID(r)
		rec.UID = uid
		return err
	})
}

func (c *Collector) readCommand(rec *process.Record, snap *process.Snapshot) {
	if rec.Failed || !c.opts.Command {
		return
	}

	// cmdline is always empty for kernel threads
	name := "cmdline"
	if rec.IsKernel() || rec.IsThread() {
		name = "comm"
	}
	path := c.path(rec.PID, rec.TID, name)

	data, err := os.ReadFile(path)
	if err != nil {
		c.fail(rec, path, err, snap)
		return
	}
	rec.Command = CleanCommand(data)
}

func (c *Collector) readMemory(rec *process.Record, snap *process.Snapshot) {
	if rec.Failed || !c.opts.Memory || rec.IsThread() || rec.IsKernel() {
		return
	}

	ramKey, swapKey := SmapsPss, SmapsSwapPss
	if c.opts.RSS {
		ramKey, swapKey = SmapsRss, SmapsSwap
	}

	path := c.path(rec.PID, 0, "smaps_rollup")
	if _, err := os.Stat(path); err != nil {
		path = c.path(rec.PID, 0, "smaps")
	}

	c.withFile(rec, path, snap, func(r io.Reader) error {
		ram, swap, err := ParseSmaps(r, ramKey, swapKey)
		if err != nil {
			return err
		}
		rec.Memory, rec.Swap = ram, swap
		return nil
	})
}

// readIO sums the io records of the live threads of a process. With
// TotalIO, and always for a thread, the record's own io is used instead.
// The process-level counter also holds the I/O of threads that already
// exited and of reaped children, so the two modes report different totals.
func (c *Collector) readIO(rec *process.Record, snap *process.Snapshot) {
	if rec.Failed || !c.opts.IO {
		return
	}

	if c.opts.TotalIO || rec.IsThread() {
		c.withFile(rec, c.path(rec.PID, rec.TID, "io"), snap, func(r io.Reader) error {
			counters, err := ParseIO(r)
			if err != nil {
				return err
			}
			rec.ReadIO, rec.WriteIO = counters.Read, counters.Write
			return nil
		})
		return
	}

	var total IOCounters
	taskDir := c.path(rec.PID, 0, "task")

	err := ScanDir(taskDir, func(tid process.ProcessID) {
		if rec.Failed {
			return
		}

		path := filepath.Join(taskDir, strconv.Itoa(int(tid)), "io")
		file, err := os.Open(path)
		if err != nil {
			// A thread that exited took its counters with it
			if !IsGone(err) {
				c.fail(rec, path, err, snap)
			}
			return
		}
		defer file.Close()

		counters, err := ParseIO(file)
		if err != nil {
			c.fail(rec, path, err, snap)
			return
		}
		total.Add(counters)
	})
	if err != nil {
		c.fail(rec, taskDir, err, snap)
		return
	}

	if !rec.Failed {
		rec.ReadIO, rec.WriteIO = total.Read, total.Write
	}
}

func (c *Collector) withFile(rec *process.Record, path string, snap *process.Snapshot, fn func(io.Reader) error) {
	file, err := os.Open(path)
	if err != nil {
		c.fail(rec, path, err, snap)
		return
	}
	defer file.Close()

	if err := fn(file); err != nil {
		c.fail(rec, path, err, snap)
	}
}

// fail marks rec as failed. A process that exited meanwhile is not an
// error; anything else is recorded against the process in snap.
func (c *Collector) fail(rec *process.Record, path string, err error, snap *process.Snapshot) {
	rec.Failed = true
	if IsGone(err) {
		return
	}

	readErr := newReadError(path, err)
	if c.opts.Verbose {
		c.log.Warn(readErr.Error())
	}
	if snap != nil && !rec.IsThread() {
		snap.SetError(rec.PID, readErr)
	}
}

func (c *Collector) path(pid, tid process.ProcessID, name string) string {
	if tid == 0 {
		return filepath.Join(c.opts.Root, strconv.Itoa(int(pid)), name)
	}
	return filepath.Join(c.opts.Root, strconv.Itoa(int(pid)), "task", strconv.Itoa(int(tid)), name)
}
