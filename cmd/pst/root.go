package main

import (
	"fmt"
	"io"

	"pst/config"
	"pst/procfs"
	"pst/process"
	"pst/users"

	"github.com/spf13/cobra"
)

const version = "v0.2"

// environment is everything a run takes from the outside world
type environment struct {
	stdout   io.Writer
	stderr   io.Writer
	clock    procfs.Clock
	terminal terminal
	lookup   users.LookupFunc
	self     process.ProcessID
}

// terminal describes where the output goes
type terminal struct {
	IsTTY   bool
	Columns int // 0 when unknown
}

func printErr(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, "ERR: "+msg)
}

func newRootCmd(env *environment, status *int) *cobra.Command {
	opts := config.Default()

	var (
		columns     onceValue
		configPath  string
		procRoot    string
		sysRoot     string
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:   "pst [options] [pid1 pid2 ...] [cmd1 cmd2 ...]",
		Short: "Print the process tree of all or matched processes",
		Long: "Parses Linux procfs and prints process tree of all or matched processes.\n\n" +
			"Columns: all, ppid, pid, tty, uid, ram*, swap*, cpu, age, io*, cmd\n" +
			"* Required capabilities: CAP_SYS_PTRACE and CAP_DAC_READ_SEARCH",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, _ = fmt.Fprintln(env.stdout, "pst "+version)
				return nil
			}

			flags := cmd.Flags()
			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				if err := file.Apply(&opts, flags.Changed); err != nil {
					return err
				}
			}

			if flags.Changed("opt") {
				cols, err := config.ParseColumns(columns.value)
				if err != nil {
					return err
				}
				opts.Columns = cols
			}

			opts.Args = args
			if err := opts.Validate(); err != nil {
				return err
			}

			*status = run(opts, roots{proc: procRoot, sys: sysRoot}, env)
			return nil
		},
	}

	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.VarP(&columns, "opt", "o", "Print only given columns")
	flags.BoolVar(&opts.ShowKernel, "kernel", false, "Show kernel threads")
	flags.BoolVar(&opts.Threads, "threads", false, "Show process threads")
	flags.BoolVar(&opts.RSS, "rss", false, "Show RSS RAM and SWAP instead of PSS")
	flags.BoolVar(&opts.CPUTime, "cpu-time", false, "Show CPU time instead of percentage")
	flags.BoolVar(&opts.TotalIO, "total-io", false, "Include I/O of dead threads and dead child processes")
	flags.BoolVar(&opts.NoTree, "no-tree", false, "Print only given processes, not their child tree")
	flags.BoolVar(&opts.ExeOnly, "no-full", false, "Match only the cmd part before first space, not the whole cmdline")
	flags.BoolVar(&opts.NoPID, "no-pid", false, "Treat the numerical argument(s) as cmd, not pid")
	flags.BoolVar(&opts.NoName, "no-name", false, "Do not try to resolve uid to user name")
	flags.BoolVar(&opts.NoHeader, "no-header", false, "Do not print header")
	flags.BoolVar(&opts.NoTrunc, "no-trunc", false, "Do not fit lines to terminal width")
	flags.BoolVar(&opts.ASCII, "ascii", false, "Use ASCII characters for tree art")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Print all errors")
	flags.BoolVarP(&showVersion, "version", "V", false, "Show version")
	flags.StringVar(&configPath, "config", "", "Read default options from a YAML file")

	flags.StringVar(&procRoot, "proc-root", "/proc", "procfs mount point")
	flags.StringVar(&sysRoot, "sys-root", "/sys", "sysfs mount point")
	_ = flags.MarkHidden("proc-root")
	_ = flags.MarkHidden("sys-root")

	return cmd
}

// execute runs pst with args and returns the exit status.
func execute(args []string, env *environment) int {
	status := 0
	cmd := newRootCmd(env, &status)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		printErr(env.stderr, err.Error())
		return 1
	}
	return status
}
