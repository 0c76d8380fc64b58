// Package models defines the data shapes shared by the viewer pipeline.
package models

// RawRecord is a race record exactly as decoded from the results document.
// Key names vary between producers; numbers are kept as json.Number.
type RawRecord map[string]any

// ReplayLink is a labelled link to a race replay.
type ReplayLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Finisher is one placed runner from producers that key finishers by rank.
type Finisher struct {
	Horse         string `json:"horse"`
	Jockey        string `json:"jockey"`
	Trainer       string `json:"trainer"`
	StartingPrice string `json:"sp"`
	Rank          int    `json:"rank"`
}

// CanonicalRace is the schema-stable form of a RawRecord.
// Absent text fields are empty strings and ReplayLinks is never nil.
type CanonicalRace struct {
	Source        RawRecord    `json:"-"`
	Date          string       `json:"date"`
	Course        string       `json:"course"`
	OffTime       string       `json:"offTime"`
	Title         string       `json:"title"`
	Horse         string       `json:"horse"`
	Position      string       `json:"position"`
	StartingPrice string       `json:"startingPrice"`
	Note          string       `json:"note"`
	RaceNumber    string       `json:"raceNumber"`
	ReplayLinks   []ReplayLink `json:"replayLinks"`
	Finishers     []Finisher   `json:"finishers"`
	Handicap      bool         `json:"handicap"`
}

// FinisherAt returns the finisher placed at rank, or an empty Finisher.
func (r CanonicalRace) FinisherAt(rank int) Finisher {
	for _, f := range r.Finishers {
		if f.Rank == rank {
			return f
		}
	}

	return Finisher{}
}

// ResultsDocument is a normalized results document.
type ResultsDocument struct {
	UpdatedAt string          `json:"updatedAt"`
	Races     []CanonicalRace `json:"races"`
}
