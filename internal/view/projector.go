// Package view projects canonical races into display records.
package view

import "dcrhub/internal/models"

// Project formats a race for display. Every text field is HTML-escaped.
func Project(r models.CanonicalRace) models.DisplayRecord {
	rec := models.DisplayRecord{
		Date:          FormatDate(r.Date),
		OffTime:       EscapeHTML(r.OffTime),
		Course:        EscapeHTML(r.Course),
		Title:         EscapeHTML(r.Title),
		Horse:         EscapeHTML(r.Horse),
		Position:      EscapeHTML(r.Position),
		StartingPrice: EscapeHTML(r.StartingPrice),
		Note:          EscapeHTML(r.Note),
		RaceNumber:    EscapeHTML(r.RaceNumber),
		Handicap:      r.Handicap,
		Links:         make([]models.DisplayLink, 0, len(r.ReplayLinks)),
	}

	for _, l := range r.ReplayLinks {
		rec.Links = append(rec.Links, models.DisplayLink{
			Label: EscapeHTML(l.Label),
			URL:   EscapeHTML(SafeURL(l.URL)),
		})
	}

	return rec
}

// ProjectAll projects races in order.
func ProjectAll(races []models.CanonicalRace) []models.DisplayRecord {
	out := make([]models.DisplayRecord, 0, len(races))
	for _, r := range races {
		out = append(out, Project(r))
	}

	return out
}
