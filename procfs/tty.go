package procfs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// TTYResolver names a character device. ok is false when the resolver does
// not know the device and the next one should be tried.
type TTYResolver interface {
	Resolve(major, minor uint32) (name string, ok bool)
}

// TTYResolverFunc adapts a function to TTYResolver
type TTYResolverFunc func(major, minor uint32) (string, bool)

func (f TTYResolverFunc) Resolve(major, minor uint32) (string, bool) {
	return f(major, minor)
}

// KnownMajors names virtual consoles and pseudo terminals without touching sysfs.
var KnownMajors = TTYResolverFunc(func(major, minor uint32) (string, bool) {
	switch major {
	case 4:
		return "tty" + strconv.FormatUint(uint64(minor), 10), true
	case 136:
		return "pts/" + strconv.FormatUint(uint64(minor), 10), true
	}
	return "", false
})

// NumericTTY always succeeds with "major.minor".
var NumericTTY = TTYResolverFunc(func(major, minor uint32) (string, bool) {
	return fmt.Sprintf("%d.%d", major, minor), true
})

// SysfsTTY looks up DEVNAME in <Root>/dev/char/<major>:<minor>/uevent
type SysfsTTY struct {
	Root string
}

func (s SysfsTTY) Resolve(major, minor uint32) (string, bool) {
	path := filepath.Join(s.Root, "dev", "char", fmt.Sprintf("%d:%d", major, minor), "uevent")

	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if name, found := strings.CutPrefix(scanner.Text(), "DEVNAME="); found && name != "" {
			return name, true
		}
	}
	return "", false
}

// TTYResolvers tries each resolver in order
type TTYResolvers []TTYResolver

// DefaultTTYResolvers returns the usual chain: known majors, sysfs, numeric.
func DefaultTTYResolvers(sysRoot string) TTYResolvers {
	return TTYResolvers{KnownMajors, SysfsTTY{Root: sysRoot}, NumericTTY}
}

// Name returns the terminal name of the encoded device number from stat.
// Zero means no controlling terminal and yields "?".
func (rs TTYResolvers) Name(dev uint64) string {
	if dev == 0 {
		return "?"
	}

	major, minor := unix.Major(dev), unix.Minor(dev)
	for _, r := range rs {
		if name, ok := r.Resolve(major, minor); ok {
			return name
		}
	}
	return "?"
}
