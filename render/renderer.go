// Package render prints a process snapshot as a tree.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"pst/config"
	"pst/process"
)

// ThreadSource reads the threads of a process at print time. Threads
// returned alongside an error are still printed.
type ThreadSource interface {
	Threads(pid process.ProcessID) ([]*process.Record, error)
}

// UserNames resolves owner ids
type UserNames interface {
	Name(uid int) string
}

// Options controls the layout of the output
type Options struct {
	Columns config.Columns

	Threads bool // Print threads under their process, adds the TID column
	NoTree  bool // Print targets without their descendants
	CPUTime bool // CPU column as a duration instead of a share of the age

	Glyphs Glyphs

	// Width truncates every line to this many terminal columns; 0 disables it
	Width int
}

// level is one ancestor of the node being printed
type level struct {
	siblings int // Number of children of that ancestor's parent
	position int // 1-based position of the ancestor among them
}

func (l level) last() bool {
	return l.position == l.siblings
}

// Renderer walks a snapshot and writes one line per process. Each process
// is printed at most once, even when it is reachable both as a target and
// as a descendant of another target.
type Renderer struct {
	w       io.Writer
	snap    *process.Snapshot
	opts    Options
	users   UserNames
	threads ThreadSource
	columns []columnSpec

	printed  map[process.ProcessID]bool
	expanded map[process.ProcessID]bool
	err      error

	threadErrs []error
}

// New creates a renderer. threads may be nil when Options.Threads is off.
func New(w io.Writer, snap *process.Snapshot, opts Options, users UserNames, threads ThreadSource) *Renderer {
	if opts.Glyphs == (Glyphs{}) {
		opts.Glyphs = UnicodeGlyphs
	}

	r := &Renderer{
		w:        w,
		snap:     snap,
		opts:     opts,
		users:    users,
		threads:  threads,
		printed:  make(map[process.ProcessID]bool),
		expanded: make(map[process.ProcessID]bool),
	}

	for _, spec := range columnSpecs {
		if spec.Enabled(&r.opts) {
			r.columns = append(r.columns, spec)
		}
	}

	return r
}

// Header writes the column titles.
func (r *Renderer) Header() error {
	var b strings.Builder
	for _, col := range r.columns {
		if col.LeftAlign {
			b.WriteString("  ")
		}
		b.WriteString(pad(col.Header, col.Width, col.LeftAlign))
	}
	if r.opts.Columns.Has(config.ColCmd) {
		b.WriteString("  COMMAND")
	}

	r.writeLine(b.String())
	return r.err
}

// Tree prints every process. Roots are the parent ids that have no record
// of their own (pid 0, or a parent that could not be read), ascending.
func (r *Renderer) Tree() error {
	for _, ppid := range r.snap.Parents() {
		if r.snap.Get(ppid) == nil {
			r.walk(ppid, nil)
		}
	}

	// Only reachable when parent links form a loop, which a racing read
	// of two reparented processes can produce.
	for _, pid := range r.snap.PIDs() {
		if !r.printed[pid] {
			r.walk(pid, nil)
		}
	}

	return r.err
}

// Targets prints each target as a root followed by its descendants, or
// alone with NoTree.
func (r *Renderer) Targets(pids []process.ProcessID) error {
	for _, pid := range pids {
		r.walk(pid, nil)
	}
	return r.err
}

// ThreadErrors returns the failures to list threads met so far. They do
// not stop the walk.
func (r *Renderer) ThreadErrors() []error {
	return r.threadErrs
}

// Printed returns how many processes have been written so far.
func (r *Renderer) Printed() int {
	return len(r.printed)
}

func (r *Renderer) walk(pid process.ProcessID, levels []level) {
	if r.err != nil {
		return
	}

	rec := r.snap.Get(pid)
	printing := rec != nil && !r.printed[pid]
	hasChildren := !r.opts.NoTree && r.snap.HasChildren(pid) && !r.expanded[pid]

	if printing {
		r.printed[pid] = true
		r.writeRecord(rec, r.prefix(levels, hasChildren))

		if r.opts.Threads && r.threads != nil && !rec.IsKernel() {
			r.writeThreads(rec, levels, hasChildren)
		}
	}

	if !hasChildren {
		return
	}
	r.expanded[pid] = true

	children := r.snap.Children(pid)
	if printing {
		// Cap the slice so siblings never share the appended level
		levels = append(levels[:len(levels):len(levels)], level{siblings: len(children), position: 1})
	}

	for _, child := range children {
		r.walk(child.PID, levels)
		if printing {
			levels[len(levels)-1].position++
		}
	}
}

// prefix builds the tree art in front of a process command.
func (r *Renderer) prefix(levels []level, hasChildren bool) string {
	g := r.opts.Glyphs

	var b strings.Builder
	for i, l := range levels {
		if i < len(levels)-1 {
			b.WriteString(r.ancestor(l))
			continue
		}

		if l.last() {
			b.WriteString(g.UpRight)
		} else {
			b.WriteString(g.VertRight)
		}
		b.WriteString(g.Horiz)
		if hasChildren {
			b.WriteString(g.DownHoriz)
		} else {
			b.WriteString(g.Horiz)
		}
		b.WriteString(g.HorizLeft)
	}
	return b.String()
}

// threadPrefix is the art shared by all thread lines of a process: the
// ancestors' bars, then room under the process's own connector.
func (r *Renderer) threadPrefix(levels []level, hasChildren bool) string {
	g := r.opts.Glyphs

	var b strings.Builder
	for i, l := range levels {
		b.WriteString(r.ancestor(l))
		if i == len(levels)-1 {
			if hasChildren {
				b.WriteString(g.Vert)
			} else {
				b.WriteString(" ")
			}
			b.WriteString(" ")
		}
	}
	return b.String()
}

func (r *Renderer) ancestor(l level) string {
	if l.last() {
		return "  "
	}
	return r.opts.Glyphs.Vert + " "
}

func (r *Renderer) writeThreads(rec *process.Record, levels []level, hasChildren bool) {
	threads, err := r.threads.Threads(rec.PID)
	if err != nil {
		r.threadErrs = append(r.threadErrs, err)
	}
	base := r.threadPrefix(levels, hasChildren)
	g := r.opts.Glyphs

	for i, th := range threads {
		connector := g.VertRight
		// The last thread of a root with children still leads on to them
		if i == len(threads)-1 && !(hasChildren && len(levels) == 0) {
			connector = g.UpRight
		}
		r.writeRecord(th, base+connector+g.HorizLeft)
	}
}

func (r *Renderer) writeRecord(rec *process.Record, prefix string) {
	var b strings.Builder
	for _, col := range r.columns {
		if col.LeftAlign {
			b.WriteString("  ")
		}
		b.WriteString(pad(col.Value(r, rec), col.Width, col.LeftAlign))
	}
	if r.opts.Columns.Has(config.ColCmd) {
		b.WriteString("  ")
		b.WriteString(prefix)
		b.WriteString(rec.Command)
	}

	r.writeLine(b.String())
}

func (r *Renderer) writeLine(line string) {
	if r.err != nil {
		return
	}
	if r.opts.Width > 0 {
		line = Truncate(line, r.opts.Width)
	}
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		r.err = err
	}
}

// userName resolves uid. Names come from users as they are meant to be
// shown; the numeric fallback is never shortened.
func (r *Renderer) userName(uid int) string {
	switch {
	case r.users != nil:
		return r.users.Name(uid)
	case uid >= 0:
		return strconv.Itoa(uid)
	default:
		return "?"
	}
}
