package process

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
)

// MissReason says why a user token did not resolve to a process
type MissReason int

const (
	MissNotFound     MissReason = iota // Numeric pid not present in /proc
	MissKernelThread                   // Pid is a hidden kernel thread
	MissReadFailed                     // Pid exists but its records could not be read
	MissNoCommand                      // No command contains the token
)

// Miss describes one unresolved token
type Miss struct {
	Token  string
	Reason MissReason
	Err    error // Set for MissReadFailed
}

func (m Miss) String() string {
	switch m.Reason {
	case MissKernelThread:
		return "Ignoring pid " + m.Token
	case MissReadFailed:
		return fmt.Sprintf("Pid %s: %v", m.Token, m.Err)
	case MissNoCommand:
		return "No match for process name: " + m.Token
	default:
		return "Pid " + m.Token + " not found"
	}
}

// MatchOptions controls how tokens are interpreted
type MatchOptions struct {
	// NoPID treats numeric tokens as command text
	NoPID bool

	// ExeOnly matches only the part of the command before the first space
	ExeOnly bool

	// Self is excluded from command matches, so pst never matches itself
	Self ProcessID
}

// Match resolves tokens to target pids. Numeric tokens are pids, anything
// else is a case-sensitive substring of the command. The result is sorted
// and free of duplicates. Match does not modify the snapshot.
func (s *Snapshot) Match(tokens []string, opts MatchOptions) ([]ProcessID, []Miss) {
	targets := make(map[ProcessID]struct{})
	var misses []Miss

	for _, token := range tokens {
		if !opts.NoPID && isPID(token) {
			pid, err := strconv.Atoi(token)
			if err != nil {
				misses = append(misses, Miss{Token: token, Reason: MissNotFound})
				continue
			}
			if miss, ok := s.matchPID(ProcessID(pid), token); !ok {
				misses = append(misses, miss)
				continue
			}
			targets[ProcessID(pid)] = struct{}{}
			continue
		}

		if !s.matchCommand(token, opts, targets) {
			misses = append(misses, Miss{Token: token, Reason: MissNoCommand})
		}
	}

	result := make([]ProcessID, 0, len(targets))
	for pid := range targets {
		result = append(result, pid)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	return result, misses
}

func (s *Snapshot) matchPID(pid ProcessID, token string) (Miss, bool) {
	if _, ok := s.byID[pid]; ok {
		return Miss{}, true
	}
	if s.KernelSkipped(pid) {
		return Miss{Token: token, Reason: MissKernelThread}, false
	}
	if err := s.errors[pid]; err != nil {
		return Miss{Token: token, Reason: MissReadFailed, Err: err}, false
	}
	return Miss{Token: token, Reason: MissNotFound}, false
}

func (s *Snapshot) matchCommand(token string, opts MatchOptions, targets map[ProcessID]struct{}) bool {
	matched := false
	for pid, rec := range s.byID {
		if pid == opts.Self {
			continue
		}

		if commandMatches(rec.Command, token, opts.ExeOnly) {
			targets[pid] = struct{}{}
			matched = true
		}
	}
	return matched
}

// commandMatches reports whether token selects cmd. The whole command line
// matches on any substring. With exeOnly only the executable is considered,
// and it must be the token itself or have the token as its base name.
func commandMatches(cmd, token string, exeOnly bool) bool {
	if !exeOnly {
		return strings.Contains(cmd, token)
	}

	exe, _, _ := strings.Cut(cmd, " ")
	if exe == "" {
		return false
	}
	return exe == token || path.Base(exe) == token
}

func isPID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
