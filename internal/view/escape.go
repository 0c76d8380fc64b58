package view

import (
	"net/url"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes & < > " and ' for insertion into markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// SafeURL keeps http(s), relative and fragment links and replaces anything
// else (javascript:, data:, unparseable) with "#".
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "#"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}

	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return raw
	}

	return "#"
}
