package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()

	prev := time.Local
	time.Local = loc

	t.Cleanup(func() { time.Local = prev })
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01", "01/01/2024"},
		{"2024-12-25T23:30:00Z", "25/12/2024"},
		{"2024-12-25T23:30:00-02:00", "26/12/2024"},
		{"2024-05-01 10:00:00", "01/05/2024"},
		{"", ""},
		{"not a date", ""},
		{"25/12/2024", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), tt.in)
	}
}

func TestFormatDate_IgnoresLocalZone(t *testing.T) {
	for _, offset := range []int{-11, -5, 0, 9, 14} {
		withLocal(t, time.FixedZone("test", offset*3600))
		assert.Equal(t, "01/01/2024", FormatDate("2024-01-01"), "offset %d", offset)
	}
}

func TestHumanUpdatedAt(t *testing.T) {
	assert.Equal(t, "just now", HumanUpdatedAt(""))
	assert.Equal(t, "just now", HumanUpdatedAt("yesterday-ish"))
	assert.Equal(t, "01/05/2024 08:05 UTC", HumanUpdatedAt("2024-05-01T08:05:59Z"))
	assert.Equal(t, "01/05/2024 07:05 UTC", HumanUpdatedAt("2024-05-01T08:05:00+01:00"))

	withLocal(t, time.FixedZone("test", 10*3600))
	assert.Equal(t, "31/12/2023 23:00 UTC", HumanUpdatedAt("2023-12-31T23:00:00Z"))
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "0 results · Updated just now", StatusLine(0, ""))
	assert.Equal(t, "1 result · Updated just now", StatusLine(1, ""))
	assert.Equal(t, "2 results · Updated 01/05/2024 18:30 UTC", StatusLine(2, "2024-05-01T18:30:00Z"))
}
