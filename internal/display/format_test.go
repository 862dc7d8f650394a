package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "input %d", tt.in)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "unknown"},
		{-3, "unknown"},
		{7.25, "0:07.2"},
		{67.5, "1:07.5"},
		{600, "10:00.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), "input %v", tt.in)
	}
}

func TestFormatResolution(t *testing.T) {
	assert.Equal(t, "1920x1080", FormatResolution(1920, 1080))
	assert.Equal(t, "unknown", FormatResolution(0, 1080))
	assert.Equal(t, "unknown", FormatResolution(640, 0))
}
