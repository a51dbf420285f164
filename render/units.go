package render

import (
	"fmt"
	"strconv"
)

const (
	mb = 1000000.0
	gb = 1000000000.0
)

// ReadableSize formats bytes in decimal units: "512 KB", "1.5 MB", "2.5 GB".
func ReadableSize(bytes int64) string {
	if bytes < mb {
		return strconv.FormatInt(bytes/1000, 10) + " KB"
	}
	if bytes < gb {
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	}
	return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
}

// ReadableDuration formats seconds as the two coarsest non-zero units,
// e.g. "2d3h", "1h1m", "45s".
func ReadableDuration(sec int64) string {
	if sec < 0 {
		sec = 0
	}

	d := sec / (60 * 60 * 24)
	sec -= d * (60 * 60 * 24)

	h := sec / (60 * 60)
	sec -= h * (60 * 60)

	m := sec / 60
	sec -= m * 60

	switch {
	case d > 0:
		return unit(d, "d") + optionalUnit(h, "h")
	case h > 0:
		return unit(h, "h") + optionalUnit(m, "m")
	case m > 0:
		return unit(m, "m") + optionalUnit(sec, "s")
	}
	return unit(sec, "s")
}

func unit(v int64, suffix string) string {
	return strconv.FormatInt(v, 10) + suffix
}

func optionalUnit(v int64, suffix string) string {
	if v == 0 {
		return ""
	}
	return unit(v, suffix)
}

// Percentage formats dividend/divisor as "12.34%". A process that has not
// aged yet has no meaningful share and renders as "-".
func Percentage(dividend, divisor int64) string {
	if divisor <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(dividend)/float64(divisor))
}
