package main

import (
	"errors"

	"github.com/spf13/pflag"
)

var errDuplicateOpt = errors.New("Duplicate opt")

// onceValue is a string flag that may appear only once on a command line
type onceValue struct {
	value string
	set   bool
}

var _ pflag.Value = (*onceValue)(nil)

func (v *onceValue) String() string { return v.value }

func (v *onceValue) Set(s string) error {
	if v.set {
		return errDuplicateOpt
	}
	v.value = s
	v.set = true
	return nil
}

func (v *onceValue) Type() string { return "string" }
