// Package filter builds the predicates that select races for display.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"dcrhub/internal/models"
)

// Predicate reports whether a race is admitted by a filter.
type Predicate func(models.CanonicalRace) bool

// Build composes the date, course and search predicates for state.
// An empty input admits every race.
func Build(state models.FilterState) Predicate {
	return And(ByDate(state.Date), ByCourse(state.Course), BySearch(state.Query))
}

// And admits a race only when every predicate does.
func And(preds ...Predicate) Predicate {
	return func(r models.CanonicalRace) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}

		return true
	}
}

// ByDate matches the first ten characters of the race date against the
// normalized input. Unparseable input is compared verbatim.
func ByDate(datetext string) Predicate {
	if strings.TrimSpace(datetext) == "" {
		return all
	}

	want := DateKey(datetext)

	return func(r models.CanonicalRace) bool {
		return prefix(r.Date, 10) == want
	}
}

// ByCourse is a case-insensitive substring match on the course.
func ByCourse(courseQuery string) Predicate {
	q := fold(strings.TrimSpace(courseQuery))
	if q == "" {
		return all
	}

	return func(r models.CanonicalRace) bool {
		return strings.Contains(fold(r.Course), q)
	}
}

// BySearch is a case-insensitive substring match over the race's text fields.
func BySearch(searchQuery string) Predicate {
	q := fold(strings.TrimSpace(searchQuery))
	if q == "" {
		return all
	}

	return func(r models.CanonicalRace) bool {
		return strings.Contains(fold(Haystack(r)), q)
	}
}

// Haystack joins the searchable fields with single spaces.
func Haystack(r models.CanonicalRace) string {
	return strings.Join([]string{
		r.Horse, r.Title, r.Course, r.Note, r.Position, r.StartingPrice, r.OffTime,
	}, " ")
}

// Apply returns the races admitted by pred, preserving their order.
func Apply(races []models.CanonicalRace, pred Predicate) []models.CanonicalRace {
	out := make([]models.CanonicalRace, 0, len(races))

	for _, r := range races {
		if pred(r) {
			out = append(out, r)
		}
	}

	return out
}

func all(models.CanonicalRace) bool { return true }

// fold applies Unicode case folding. Casers are stateful, so each call gets
// its own.
func fold(s string) string {
	if s == "" {
		return ""
	}

	return cases.Fold().String(s)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
