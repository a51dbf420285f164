package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadableSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 KB"},
		{500, "0 KB"},
		{999999, "999 KB"},
		{1000000, "1.0 MB"},
		{1500000, "1.5 MB"},
		{999949999, "999.9 MB"},
		{2500000000, "2.5 GB"},
		{-1, "0 KB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadableSize(tt.bytes), "ReadableSize(%d)", tt.bytes)
	}
}

func TestReadableDuration(t *testing.T) {
	tests := []struct {
		sec  int64
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{61, "1m1s"},
		{3600, "1h"},
		{3661, "1h1m"},
		{86400, "1d"},
		{90061, "1d1h"},
		{86400 + 59, "1d"},
		{-5, "0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadableDuration(tt.sec), "ReadableDuration(%d)", tt.sec)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "50.00%", Percentage(500, 1000))
	assert.Equal(t, "0.33%", Percentage(1, 300))
	assert.Equal(t, "0.00%", Percentage(0, 1000))
	assert.Equal(t, "-", Percentage(10, 0))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 4, DisplayWidth(UnicodeGlyphs.VertRight+UnicodeGlyphs.Horiz+UnicodeGlyphs.DownHoriz+UnicodeGlyphs.HorizLeft))
	assert.Equal(t, 2, DisplayWidth("漢"))
	assert.Equal(t, 1, DisplayWidth("é"))
	assert.Equal(t, 3, DisplayWidth("abc"))
}

func TestTruncate(t *testing.T) {
	line := "  ├──╴abcdef"

	assert.Equal(t, "  ├──╴ab", Truncate(line, 8))
	assert.Equal(t, line, Truncate(line, 12))
	assert.Equal(t, line, Truncate(line, 100))
	assert.Equal(t, line, Truncate(line, 0))
	assert.Equal(t, "ab", Truncate("ab漢c", 3))
	assert.Equal(t, "ab漢", Truncate("ab漢c", 4))
}
