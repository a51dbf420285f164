package config

import (
	"fmt"
	"strings"
)

// Column is one selectable output column
type Column int

const (
	ColPPID Column = iota
	ColPID
	ColTTY
	ColUID
	ColRAM
	ColSwap
	ColCPU
	ColAge
	ColReadIO
	ColWriteIO
	ColCmd
	numColumns
)

// Columns is a set of columns
type Columns uint16

// DefaultColumns are shown when no --opt is given.
var DefaultColumns = Columns(0).With(ColPPID, ColPID, ColUID, ColCmd)

// AllColumns is what "all" selects.
var AllColumns = Columns(1<<numColumns - 1)

// Has reports whether col is in the set.
func (c Columns) Has(col Column) bool {
	return c&(1<<col) != 0
}

// With returns the set plus cols.
func (c Columns) With(cols ...Column) Columns {
	for _, col := range cols {
		c |= 1 << col
	}
	return c
}

// Any reports whether at least one of cols is in the set.
func (c Columns) Any(cols ...Column) bool {
	for _, col := range cols {
		if c.Has(col) {
			return true
		}
	}
	return false
}

var columnNames = map[string][]Column{
	"ppid": {ColPPID},
	"pid":  {ColPID},
	"tty":  {ColTTY},
	"uid":  {ColUID},
	"ram":  {ColRAM},
	"swap": {ColSwap},
	"cpu":  {ColCPU},
	"age":  {ColAge},
	"io":   {ColReadIO, ColWriteIO},
	"rio":  {ColReadIO},
	"wio":  {ColWriteIO},
	"cmd":  {ColCmd},
}

// ParseColumns parses a comma separated column list such as "ppid,pid,ram,cmd".
func ParseColumns(spec string) (Columns, error) {
	return ParseColumnList(strings.Split(spec, ","))
}

// ParseColumnList parses column names. "all" selects every column.
func ParseColumnList(names []string) (Columns, error) {
	var cols Columns
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "all" {
			cols = AllColumns
			continue
		}

		set, ok := columnNames[name]
		if !ok {
			return 0, fmt.Errorf("Bad argument with --opt: %s", name)
		}
		cols = cols.With(set...)
	}

	if cols == 0 {
		return 0, fmt.Errorf("No column selected")
	}
	return cols, nil
}
