package config

import (
	"errors"
)

// Options is everything pst can be told on the command line
type Options struct {
	Columns Columns

	ShowKernel bool // --kernel
	Threads    bool // --threads
	RSS        bool // --rss
	CPUTime    bool // --cpu-time
	TotalIO    bool // --total-io
	NoTree     bool // --no-tree
	ExeOnly    bool // --no-full
	NoPID      bool // --no-pid
	NoName     bool // --no-name
	NoHeader   bool // --no-header
	NoTrunc    bool // --no-trunc
	ASCII      bool // --ascii
	Verbose    bool // --verbose

	// Args are the pids and command substrings to match
	Args []string
}

// Default returns the options of a bare "pst" run.
func Default() Options {
	return Options{Columns: DefaultColumns}
}

// HasMatchArgs reports whether the output is limited to matched processes.
func (o *Options) HasMatchArgs() bool {
	return len(o.Args) > 0
}

// Validate rejects flag combinations that have no effect.
func (o *Options) Validate() error {
	if !o.HasMatchArgs() {
		switch {
		case o.NoTree:
			return errors.New("--no-tree requires pid or cmd argument to match")
		case o.ExeOnly:
			return errors.New("--no-full requires pid or cmd argument to match")
		case o.NoPID:
			return errors.New("--no-pid requires pid or cmd argument to match")
		}
	}

	if o.Columns == 0 {
		return errors.New("No column selected")
	}

	switch {
	case o.RSS && !o.Columns.Any(ColRAM, ColSwap):
		return errors.New("--rss requires 'ram' or 'swap' column")
	case o.CPUTime && !o.Columns.Has(ColCPU):
		return errors.New("--cpu-time requires 'cpu' column")
	case o.TotalIO && !o.Columns.Any(ColReadIO, ColWriteIO):
		return errors.New("--total-io requires 'io' column")
	case o.NoName && !o.Columns.Has(ColUID):
		return errors.New("--no-name requires 'uid' column")
	}

	return nil
}
