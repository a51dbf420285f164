package main

import (
	"bufio"
	"fmt"

	"pst/config"
	"pst/process"
	"pst/procfs"
	"pst/render"
	"pst/users"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// roots are the mount points pst reads from
type roots struct {
	proc string
	sys  string
}

func collectorOptions(opts config.Options, r roots) procfs.Options {
	cols := opts.Columns
	return procfs.Options{
		Root:       r.proc,
		SysRoot:    r.sys,
		ShowKernel: opts.ShowKernel,
		TTY:        cols.Has(config.ColTTY),
		UID:        cols.Has(config.ColUID),
		Command:    cols.Has(config.ColCmd) || opts.HasMatchArgs(),
		Memory:     cols.Any(config.ColRAM, config.ColSwap),
		CPU:        cols.Has(config.ColCPU),
		Age:        cols.Has(config.ColAge),
		IO:         cols.Any(config.ColReadIO, config.ColWriteIO),
		RSS:        opts.RSS,
		TotalIO:    opts.TotalIO,

		// Failures of matched pids are reported per argument instead
		Verbose: opts.Verbose && !opts.HasMatchArgs(),
	}
}

// run collects a snapshot, then prints it. It returns the exit status.
func run(opts config.Options, r roots, env *environment) int {
	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "pst"))

	collector, err := procfs.NewCollector(collectorOptions(opts, r), env.clock)
	if err != nil {
		printErr(env.stderr, err.Error())
		return 1
	}

	snap := process.NewSnapshot()
	if err := collector.Collect(snap); err != nil {
		printErr(env.stderr, err.Error())
		return 1
	}
	collector.SetVerbose(opts.Verbose)

	var targets []process.ProcessID
	if opts.HasMatchArgs() {
		var misses []process.Miss
		targets, misses = snap.Match(opts.Args, process.MatchOptions{
			NoPID:   opts.NoPID,
			ExeOnly: opts.ExeOnly,
			Self:    env.self,
		})

		if opts.Verbose {
			for _, miss := range misses {
				printErr(env.stderr, miss.String())
			}
		}
		if len(targets) == 0 {
			if !opts.Verbose {
				printErr(env.stderr, "Nothing matched")
			}
			return 1
		}
		if opts.Verbose {
			log.Infoln("Matched", len(targets), "of", snap.Len(), "processes")
		}
	}

	if snap.Empty() {
		printErr(env.stderr, "Failed to get any pid")
		return 1
	}

	names, err := users.New(env.lookup, opts.NoName)
	if err != nil {
		printErr(env.stderr, err.Error())
		return 1
	}

	renderOpts := render.Options{
		Columns: opts.Columns,
		Threads: opts.Threads,
		NoTree:  opts.NoTree,
		CPUTime: opts.CPUTime,
		Glyphs:  render.UnicodeGlyphs,
	}
	if opts.ASCII || !env.terminal.IsTTY {
		renderOpts.Glyphs = render.ASCIIGlyphs
	}
	if !opts.NoTrunc && env.terminal.IsTTY {
		renderOpts.Width = env.terminal.Columns
	}

	out := bufio.NewWriter(env.stdout)
	renderer := render.New(out, snap, renderOpts, names, collector)

	if !opts.NoHeader {
		err = renderer.Header()
	}
	if err == nil {
		if targets != nil {
			err = renderer.Targets(targets)
		} else {
			err = renderer.Tree()
		}
	}
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		printErr(env.stderr, fmt.Sprintf("write output: %v", err))
		return 1
	}
	for _, threadErr := range renderer.ThreadErrors() {
		printErr(env.stderr, threadErr.Error())
	}

	if n := snap.ErrorCount(); n > 0 && !opts.Verbose {
		printErr(env.stderr, fmt.Sprintf("Failed to get %d pids", n))
		return 1
	}
	if opts.Verbose {
		log.Debugln("Printed", renderer.Printed(), "processes")
	}

	return 0
}
