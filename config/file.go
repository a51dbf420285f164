package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File holds defaults read from a YAML file. Keys are the long flag names;
// a flag given on the command line wins over the file.
//
//	columns: [ppid, pid, uid, ram, cpu, cmd]
//	ascii: true
//	no-trunc: true
type File struct {
	Columns []string `yaml:"columns"`

	Kernel   *bool `yaml:"kernel"`
	Threads  *bool `yaml:"threads"`
	RSS      *bool `yaml:"rss"`
	CPUTime  *bool `yaml:"cpu-time"`
	TotalIO  *bool `yaml:"total-io"`
	NoName   *bool `yaml:"no-name"`
	NoHeader *bool `yaml:"no-header"`
	NoTrunc  *bool `yaml:"no-trunc"`
	ASCII    *bool `yaml:"ascii"`
	Verbose  *bool `yaml:"verbose"`
}

// LoadFile reads a defaults file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies the file's values into o, skipping every setting for which
// changed(flagName) is true. The column list is keyed as "opt".
func (f *File) Apply(o *Options, changed func(flag string) bool) error {
	if len(f.Columns) > 0 && !changed("opt") {
		cols, err := ParseColumnList(f.Columns)
		if err != nil {
			return err
		}
		o.Columns = cols
	}

	for _, b := range []struct {
		flag string
		src  *bool
		dst  *bool
	}{
		{"kernel", f.Kernel, &o.ShowKernel},
		{"threads", f.Threads, &o.Threads},
		{"rss", f.RSS, &o.RSS},
		{"cpu-time", f.CPUTime, &o.CPUTime},
		{"total-io", f.TotalIO, &o.TotalIO},
		{"no-name", f.NoName, &o.NoName},
		{"no-header", f.NoHeader, &o.NoHeader},
		{"no-trunc", f.NoTrunc, &o.NoTrunc},
		{"ascii", f.ASCII, &o.ASCII},
		{"verbose", f.Verbose, &o.Verbose},
	} {
		if b.src != nil && !changed(b.flag) {
			*b.dst = *b.src
		}
	}

	return nil
}
