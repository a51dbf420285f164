package process

// ProcessID represents a unique identifier for a process or thread
type ProcessID int

// KernelThreadAnchor is the pid of kthreadd. Kernel worker threads report it as their parent.
const KernelThreadAnchor ProcessID = 2

// UnknownUID is the owner id of a record whose status had no Uid line.
const UnknownUID = -1

// Record holds everything collected about one process, or one thread of a process
// when TID is non-zero. Integer metrics are -1 until their parser fills them.
type Record struct {
	PID  ProcessID // Process ID
	TID  ProcessID // Thread ID, zero for a real process
	PPID ProcessID // Parent Process ID

	TTY     string // Controlling terminal name, "?" when there is none
	CPUTime int64  // User plus system time in milliseconds
	Age     int64  // Milliseconds since the process started
	UID     int    // Real uid from status

	Memory int64 // PSS (or RSS) in bytes
	Swap   int64 // SwapPss (or Swap) in bytes

	ReadIO  int64 // Bytes read from storage
	WriteIO int64 // Bytes written to storage

	Command string // Display command, whitespace-normalized

	Failed bool // Set when any attribute record could not be read
}

// NewRecord returns an empty record for pid (and tid, zero for the process itself).
func NewRecord(pid, tid ProcessID) *Record {
	return &Record{
		PID:     pid,
		TID:     tid,
		PPID:    -1,
		TTY:     "?",
		CPUTime: -1,
		Age:     -1,
		UID:     UnknownUID,
		Memory:  -1,
		Swap:    -1,
		ReadIO:  -1,
		WriteIO: -1,
		Command: "-",
	}
}

// IsThread reports whether the record describes a thread rather than a process.
func (r *Record) IsThread() bool {
	return r.TID != 0
}

// IsKernel reports whether the record is kthreadd or one of its children.
func (r *Record) IsKernel() bool {
	return r.PID == KernelThreadAnchor || r.PPID == KernelThreadAnchor
}
