package normalizer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcrhub/internal/models"
)

func decodeRecord(t *testing.T, src string) models.RawRecord {
	t.Helper()

	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	var raw models.RawRecord
	require.NoError(t, dec.Decode(&raw))

	return raw
}

func TestNormalize_EmptyRecord(t *testing.T) {
	race := Normalize(models.RawRecord{})

	for name, got := range map[string]string{
		"date":          race.Date,
		"course":        race.Course,
		"offTime":       race.OffTime,
		"title":         race.Title,
		"horse":         race.Horse,
		"position":      race.Position,
		"startingPrice": race.StartingPrice,
		"note":          race.Note,
	} {
		assert.Empty(t, got, name)
		assert.NotEqual(t, "undefined", got, name)
	}

	assert.NotNil(t, race.ReplayLinks)
	assert.Empty(t, race.ReplayLinks)
	assert.NotNil(t, race.Finishers)
	assert.False(t, race.Handicap)
}

func TestNormalize_NilRecord(t *testing.T) {
	race := Normalize(nil)

	assert.Empty(t, race.Course)
	assert.NotNil(t, race.ReplayLinks)
}

func TestNormalize_CandidateOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		get  func(models.CanonicalRace) string
		want string
	}{
		{"date prefers meeting_date", `{"date":"2024-01-02","meeting_date":"2024-01-01"}`, func(r models.CanonicalRace) string { return r.Date }, "2024-01-01"},
		{"date falls back to meetingDate", `{"meetingDate":"2024-01-03"}`, func(r models.CanonicalRace) string { return r.Date }, "2024-01-03"},
		{"date last candidate", `{"meeting_date_yyyy_mm_dd":"2024-01-04"}`, func(r models.CanonicalRace) string { return r.Date }, "2024-01-04"},
		{"empty course skipped", `{"course":"","track":"Ascot","venue":"Epsom"}`, func(r models.CanonicalRace) string { return r.Course }, "Ascot"},
		{"venue", `{"venue":"Epsom"}`, func(r models.CanonicalRace) string { return r.Course }, "Epsom"},
		{"off before time", `{"time":"15:00","off":"14:10"}`, func(r models.CanonicalRace) string { return r.OffTime }, "14:10"},
		{"offTime", `{"offTime":"16:20"}`, func(r models.CanonicalRace) string { return r.OffTime }, "16:20"},
		{"title from race", `{"race":"Gold Cup"}`, func(r models.CanonicalRace) string { return r.Title }, "Gold Cup"},
		{"horse from selection", `{"selection":"Kauto Star"}`, func(r models.CanonicalRace) string { return r.Horse }, "Kauto Star"},
		{"numeric position", `{"pos":1}`, func(r models.CanonicalRace) string { return r.Position }, "1"},
		{"finish", `{"finish":"2nd"}`, func(r models.CanonicalRace) string { return r.Position }, "2nd"},
		{"sp before odds", `{"odds":"5/1","sp":"4/1"}`, func(r models.CanonicalRace) string { return r.StartingPrice }, "4/1"},
		{"notes", `{"notes":"Ran on well"}`, func(r models.CanonicalRace) string { return r.Note }, "Ran on well"},
		{"null ignored", `{"note":null,"comment":"Keen"}`, func(r models.CanonicalRace) string { return r.Note }, "Keen"},
		{"object has no text", `{"course":{"name":"Ascot"},"track":"York"}`, func(r models.CanonicalRace) string { return r.Course }, "York"},
		{"race number", `{"race_number":3}`, func(r models.CanonicalRace) string { return r.RaceNumber }, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.get(Normalize(decodeRecord(t, tt.src))))
		})
	}
}

func TestNormalize_ReplayLinks(t *testing.T) {
	race := Normalize(decodeRecord(t, `{
		"replay_links": [
			{"label": "ATR", "url": "https://example.com/atr"},
			{"href": "https://example.com/href"},
			{},
			"https://example.com/plain",
			42
		]
	}`))

	require.Len(t, race.ReplayLinks, 5)
	assert.Equal(t, models.ReplayLink{Label: "ATR", URL: "https://example.com/atr"}, race.ReplayLinks[0])
	assert.Equal(t, models.ReplayLink{Label: "Replay", URL: "https://example.com/href"}, race.ReplayLinks[1])
	assert.Equal(t, models.ReplayLink{Label: "Replay", URL: "#"}, race.ReplayLinks[2])
	assert.Equal(t, models.ReplayLink{Label: "Replay", URL: "https://example.com/plain"}, race.ReplayLinks[3])
	assert.Equal(t, models.ReplayLink{Label: "Replay", URL: "#"}, race.ReplayLinks[4])
}

func TestNormalize_ReplayLinksFallbacks(t *testing.T) {
	race := Normalize(decodeRecord(t, `{"replay_links": [], "video": [{"url": "https://v"}]}`))
	require.Len(t, race.ReplayLinks, 1)
	assert.Equal(t, "https://v", race.ReplayLinks[0].URL)

	race = Normalize(decodeRecord(t, `{"links": "https://not-a-list"}`))
	assert.NotNil(t, race.ReplayLinks)
	assert.Empty(t, race.ReplayLinks)
}

func TestNormalize_FinishersByRank(t *testing.T) {
	race := Normalize(decodeRecord(t, `{
		"course": "Newbury",
		"finishers": {
			"2": {"horse": "Second", "jockey": "J2", "sp": "3/1"},
			"1": {"horse": "Winner", "jockey": "J1", "trainer": "T1", "sp": "2/1"},
			"3": null
		}
	}`))

	require.Len(t, race.Finishers, 2)
	assert.Equal(t, 1, race.Finishers[0].Rank)
	assert.Equal(t, "Winner", race.FinisherAt(1).Horse)
	assert.Equal(t, "Second", race.FinisherAt(2).Horse)
	assert.Equal(t, models.Finisher{}, race.FinisherAt(3))

	assert.Equal(t, "Winner", race.Horse)
	assert.Equal(t, "1", race.Position)
	assert.Equal(t, "2/1", race.StartingPrice)
}

func TestNormalize_DuplicateRankKeysAreStable(t *testing.T) {
	src := `{"finishers": {"1st": {"horse": "Beta"}, "1": {"horse": "Alpha"}, "2": {"horse": "Gamma"}}}`

	first := Normalize(decodeRecord(t, src))
	assert.Equal(t, "Alpha", first.FinisherAt(1).Horse)
	assert.Equal(t, "Alpha", first.Horse)

	for range 100 {
		again := Normalize(decodeRecord(t, src))
		require.Equal(t, first.Finishers, again.Finishers)
		require.Equal(t, first.Horse, again.Horse)
	}
}

func TestNormalize_FinishersPositional(t *testing.T) {
	race := Normalize(decodeRecord(t, `{
		"horse": "Flat Horse",
		"finishers": [
			{"horse_name": "A"},
			{"name": "B", "finish_position": "3="},
			"junk"
		]
	}`))

	require.Len(t, race.Finishers, 2)
	assert.Equal(t, "A", race.FinisherAt(1).Horse)
	assert.Equal(t, "B", race.FinisherAt(3).Horse)
	assert.Equal(t, "Flat Horse", race.Horse)
	assert.Empty(t, race.Position)
}

func TestNormalize_Handicap(t *testing.T) {
	for src, want := range map[string]bool{
		`{"handicap": true}`:    true,
		`{"handicap": "yes"}`:   true,
		`{"handicap": "Y"}`:     true,
		`{"handicap": 1}`:       true,
		`{"handicap": "false"}`: false,
		`{"handicap": false}`:   false,
		`{}`:                    false,
	} {
		assert.Equal(t, want, Normalize(decodeRecord(t, src)).Handicap, src)
	}
}

func TestNormalize_KeepsSource(t *testing.T) {
	raw := decodeRecord(t, `{"course":"Ascot","going":"Soft"}`)
	race := Normalize(raw)

	assert.Equal(t, "Soft", race.Source["going"])
	assert.Equal(t, "Ascot", raw["course"])
}

func TestTransformer_CustomRules(t *testing.T) {
	tr := NewTransformerWithRules([]FieldRule{
		{Field: FieldCourse, Candidates: []string{"racecourse"}},
	})

	race := tr.Transform(models.RawRecord{"racecourse": "Kempton", "course": "Ignored"})

	assert.Equal(t, "Kempton", race.Course)
	assert.Empty(t, race.Date)
	assert.NotNil(t, race.ReplayLinks)
}

func TestParseRank(t *testing.T) {
	for in, want := range map[any]int{
		"1":              1,
		"1=":             1,
		"2nd":            2,
		json.Number("3"): 3,
		"0":              0,
		"PU":             0,
		nil:              0,
	} {
		assert.Equal(t, want, parseRank(in), "%v", in)
	}
}
