// Package racecards normalizes and renders the upcoming-races document.
package racecards

import (
	"errors"
	"fmt"
	"strconv"

	"dcrhub/internal/models"
	"dcrhub/internal/normalizer"
)

// Status texts shown next to the racecards output.
const (
	LoadingStatus = "Loading racecards…"
	ErrorMessage  = "Unable to load cards.json"
)

// ErrUnsupportedDocument indicates a cards document that is neither an object nor an array.
var ErrUnsupportedDocument = errors.New("unsupported cards document")

var (
	meetingsKeys = []string{"meetings", "stages"}
	updatedKeys  = []string{"updated_at", "updatedAt", "last_updated"}

	courseKeys  = []string{"course", "venue", "name"}
	dateKeys    = []string{"meeting_date", "date", "meetingDate"}
	racesKeys   = []string{"races", "events"}
	offTimeKeys = []string{"off_time", "time", "scheduled_time", "offTime"}
	titleKeys   = []string{"race_title", "title", "name"}
	runnersKeys = []string{"runners", "entrants", "horses"}

	noKeys      = []string{"no", "number", "cloth", "saddlecloth"}
	horseKeys   = []string{"horse", "horse_name", "name"}
	jockeyKeys  = []string{"jockey", "jockey_name"}
	trainerKeys = []string{"trainer", "trainer_name"}
	ageKeys     = []string{"age"}
	weightKeys  = []string{"weight", "weight_carried", "wgt"}
	drawKeys    = []string{"draw", "stall"}
	oddsKeys    = []string{"odds", "forecast_sp", "sp"}
)

// StatusLine reports how many meetings were loaded.
func StatusLine(meetings int) string {
	return "Meetings: " + strconv.Itoa(meetings)
}

// Normalize maps a decoded cards document onto meetings. A document without
// a meetings array yields no meetings. Malformed entries become empty values.
func Normalize(doc any) (models.CardsDocument, error) {
	out := models.CardsDocument{Meetings: []models.Meeting{}}

	var items []any

	switch d := doc.(type) {
	case []any:
		items = d
	case map[string]any:
		items = normalizer.Items(d, meetingsKeys...)
		out.UpdatedAt = normalizer.FirstText(d, updatedKeys...)
	default:
		return out, fmt.Errorf("%w: got %T", ErrUnsupportedDocument, doc)
	}

	for _, item := range items {
		out.Meetings = append(out.Meetings, normalizeMeeting(record(item)))
	}

	return out, nil
}

func normalizeMeeting(m map[string]any) models.Meeting {
	meeting := models.Meeting{
		Course: normalizer.FirstText(m, courseKeys...),
		Date:   normalizer.FirstText(m, dateKeys...),
		Races:  []models.CardRace{},
	}

	for _, item := range normalizer.Items(m, racesKeys...) {
		meeting.Races = append(meeting.Races, normalizeRace(record(item)))
	}

	return meeting
}

func normalizeRace(m map[string]any) models.CardRace {
	race := models.CardRace{
		OffTime: normalizer.FirstText(m, offTimeKeys...),
		Title:   normalizer.FirstText(m, titleKeys...),
		Runners: []models.Runner{},
	}

	for _, item := range normalizer.Items(m, runnersKeys...) {
		race.Runners = append(race.Runners, normalizeRunner(record(item)))
	}

	return race
}

func normalizeRunner(m map[string]any) models.Runner {
	return models.Runner{
		No:      normalizer.FirstText(m, noKeys...),
		Horse:   normalizer.FirstText(m, horseKeys...),
		Jockey:  normalizer.FirstText(m, jockeyKeys...),
		Trainer: normalizer.FirstText(m, trainerKeys...),
		Age:     normalizer.FirstText(m, ageKeys...),
		Weight:  normalizer.FirstText(m, weightKeys...),
		Draw:    normalizer.FirstText(m, drawKeys...),
		Odds:    normalizer.FirstText(m, oddsKeys...),
	}
}

func record(v any) map[string]any {
	m, ok := normalizer.AsRecord(v)
	if !ok {
		return map[string]any{}
	}

	return m
}
