package view

import (
	"fmt"
	"strings"
	"time"
)

// Messages shown on the rendering surface.
const (
	LoadingStatus    = "Loading results…"
	LoadErrorMessage = "Unable to load results.json"
	EmptyMessage     = "No results match your filters."
)

const (
	displayDateLayout = "02/01/2006"
	displayTimeLayout = "15:04"
	justNow           = "just now"
)

// parseLayouts are tried in order. Layouts without a zone are read as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseTimestamp parses date or date-time text in UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// FormatDate renders parseable date text as dd/mm/yyyy using UTC calendar
// fields. Unparseable text renders as "".
func FormatDate(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}

	return t.Format(displayDateLayout)
}

// HumanUpdatedAt renders an update timestamp as "dd/mm/yyyy HH:MM UTC", or
// "just now" when it is absent or unparseable.
func HumanUpdatedAt(ts string) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return justNow
	}

	return fmt.Sprintf("%s %s UTC", t.Format(displayDateLayout), t.Format(displayTimeLayout))
}

// StatusLine summarises a rendered result set.
func StatusLine(count int, updatedAt string) string {
	noun := "results"
	if count == 1 {
		noun = "result"
	}

	return fmt.Sprintf("%d %s · Updated %s", count, noun, HumanUpdatedAt(updatedAt))
}
