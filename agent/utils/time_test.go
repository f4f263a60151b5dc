package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO8601(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2030-01-02T03:04:05Z", time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2030-01-02T03:04:05.250Z", time.Date(2030, 1, 2, 3, 4, 5, 250e6, time.UTC)},
		{"2030-01-02T05:04:05+02:00", time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2030-01-02T05:04:05+0200", time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2030-01-02T05:04:05.5+0200", time.Date(2030, 1, 2, 3, 4, 5, 500e6, time.UTC)},
		{"2030-01-02T03:04Z", time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)},
		{"2030-01-02T05:04+02:00", time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)},
		{"2030-01-02T05:04+0200", time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)},
		{"2030-01-02T03:04:05", time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2030-01-02T03:04", time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)},
		{"2030-01-02", time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseISO8601(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "%v != %v", tt.want, got)
		})
	}
}

func TestParseISO8601_invalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2030-13-01", "2030-02-30", "tomorrow"} {
		_, err := ParseISO8601(s)
		assert.Error(t, err, s)
	}
}

func TestFormatISO8601(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	tm := time.Date(2030, 1, 2, 6, 4, 5, 7e6, loc)
	assert.Equal(t, "2030-01-02T03:04:05.007Z", FormatISO8601(tm))
}
