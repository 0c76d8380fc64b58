package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	ukDatePattern  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// NormalizeDateInput converts a date typed as yyyy-mm-dd or d/m/yyyy into
// yyyy-mm-dd. It reports false when the text matches neither form.
func NormalizeDateInput(val string) (string, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false
	}

	if isoDatePattern.MatchString(val) {
		return val, true
	}

	m := ukDatePattern.FindStringSubmatch(val)
	if m == nil {
		return "", false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])

	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
}

// DateKey returns the comparison key for a date filter: the normalized date
// when the text parses, otherwise the trimmed text itself.
func DateKey(val string) string {
	if iso, ok := NormalizeDateInput(val); ok {
		return iso
	}

	return strings.TrimSpace(val)
}
