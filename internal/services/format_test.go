package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withUTC(t *testing.T) {
	t.Helper()
	old := time.Local
	time.Local = time.UTC
	t.Cleanup(func() { time.Local = old })
}

func TestFormatTimestamp_KnownEpoch(t *testing.T) {
	withUTC(t)
	assert.Equal(t, "14 Nov 2023 22:13", FormatTimestamp(1700000000000))
}

func TestFormatTimestamp_ZeroAndNegative(t *testing.T) {
	withUTC(t)
	assert.Equal(t, "01 Jan 1970 00:00", FormatTimestamp(0))
	assert.Equal(t, "31 Dec 1969 23:59", FormatTimestamp(-60_000))
}
