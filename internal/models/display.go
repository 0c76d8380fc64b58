package models

// DisplayLink is a projected replay link. Both fields are HTML-escaped.
type DisplayLink struct {
	Label string
	URL   string
}

// DisplayRecord is a CanonicalRace projected for display.
// Every string field is HTML-escaped and safe to insert into markup.
type DisplayRecord struct {
	Date          string
	OffTime       string
	Course        string
	Title         string
	Horse         string
	Position      string
	StartingPrice string
	Note          string
	RaceNumber    string
	Links         []DisplayLink
	Handicap      bool
}
