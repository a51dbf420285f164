package render

import (
	"strconv"
	"strings"

	"pst/config"
	"pst/process"
)

// columnSpec defines a column's header, width and how a record fills it
type columnSpec struct {
	Header    string
	Width     int
	LeftAlign bool // Left aligned columns are preceded by two spaces
	Enabled   func(o *Options) bool
	Value     func(r *Renderer, rec *process.Record) string
}

func shown(col config.Column) func(o *Options) bool {
	return func(o *Options) bool { return o.Columns.Has(col) }
}

var columnSpecs = []columnSpec{
	{
		Header:  "PPID",
		Width:   8,
		Enabled: shown(config.ColPPID),
		Value: func(_ *Renderer, rec *process.Record) string {
			return strconv.Itoa(int(rec.PPID))
		},
	},
	{
		Header:  "PID",
		Width:   8,
		Enabled: shown(config.ColPID),
		Value: func(_ *Renderer, rec *process.Record) string {
			return strconv.Itoa(int(rec.PID))
		},
	},
	{
		Header:  "TID",
		Width:   8,
		Enabled: func(o *Options) bool { return o.Threads },
		Value: func(_ *Renderer, rec *process.Record) string {
			if !rec.IsThread() {
				return "-"
			}
			return strconv.Itoa(int(rec.TID))
		},
	},
	{
		Header:  "TTY",
		Width:   8,
		Enabled: shown(config.ColTTY),
		Value: func(_ *Renderer, rec *process.Record) string {
			if rec.IsThread() {
				return "-"
			}
			return rec.TTY
		},
	},
	{
		Header:    "UID",
		Width:     10,
		LeftAlign: true,
		Enabled:   shown(config.ColUID),
		Value: func(r *Renderer, rec *process.Record) string {
			return r.userName(rec.UID)
		},
	},
	{
		Header:  "RAM",
		Width:   10,
		Enabled: shown(config.ColRAM),
		Value: func(_ *Renderer, rec *process.Record) string {
			if rec.IsThread() || rec.IsKernel() {
				return "-"
			}
			return ReadableSize(rec.Memory)
		},
	},
	{
		Header:  "SWAP",
		Width:   10,
		Enabled: shown(config.ColSwap),
		Value: func(_ *Renderer, rec *process.Record) string {
			if rec.IsThread() || rec.IsKernel() {
				return "-"
			}
			return ReadableSize(rec.Swap)
		},
	},
	{
		Header:  "CPU",
		Width:   8,
		Enabled: shown(config.ColCPU),
		Value: func(r *Renderer, rec *process.Record) string {
			if r.opts.CPUTime {
				return ReadableDuration(rec.CPUTime / 1000)
			}
			return Percentage(rec.CPUTime, rec.Age)
		},
	},
	{
		Header:  "AGE",
		Width:   8,
		Enabled: shown(config.ColAge),
		Value: func(_ *Renderer, rec *process.Record) string {
			return ReadableDuration(rec.Age / 1000)
		},
	},
	{
		Header:  "IO-R",
		Width:   10,
		Enabled: shown(config.ColReadIO),
		Value: func(_ *Renderer, rec *process.Record) string {
			return ReadableSize(rec.ReadIO)
		},
	},
	{
		Header:  "IO-W",
		Width:   10,
		Enabled: shown(config.ColWriteIO),
		Value: func(_ *Renderer, rec *process.Record) string {
			return ReadableSize(rec.WriteIO)
		},
	},
}

// pad aligns s to width columns. Values wider than the column are kept whole.
func pad(s string, width int, left bool) string {
	n := DisplayWidth(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if left {
		return s + fill
	}
	return fill + s
}
