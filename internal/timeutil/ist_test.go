package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInIST(t *testing.T) {
	parsed, err := ParseInIST(DateLayout, "2026-03-15")
	require.NoError(t, err)

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, offset := parsed.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestParseInISTRejectsBadFormat(t *testing.T) {
	_, err := ParseInIST(DateLayout, "15-03-2026")
	assert.Error(t, err)
}

func TestStartAndEndOfDay(t *testing.T) {
	// 20:00 UTC on March 15 is 01:30 IST on March 16.
	utc := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)

	start := StartOfDay(utc)
	assert.Equal(t, 16, start.Day())
	assert.Equal(t, 0, start.Hour())

	end := EndOfDay(utc)
	assert.Equal(t, 16, end.Day())
	assert.Equal(t, 23, end.Hour())
}
