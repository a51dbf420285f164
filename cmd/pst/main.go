//go:build linux

package main

import (
	"os"

	"pst/procfs"
	"pst/process"
	"pst/users"
)

func main() {
	env := &environment{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		clock:    procfs.SystemClock{},
		terminal: detectTerminal(int(os.Stdout.Fd())),
		lookup:   users.SystemLookup,
		self:     process.ProcessID(os.Getpid()),
	}

	os.Exit(execute(os.Args[1:], env))
}
