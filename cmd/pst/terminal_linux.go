//go:build linux

package main

import (
	"golang.org/x/sys/unix"
)

func detectTerminal(fd int) terminal {
	var t terminal

	if _, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
		t.IsTTY = true
	}
	if ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err == nil {
		t.Columns = int(ws.Col)
	}

	return t
}
